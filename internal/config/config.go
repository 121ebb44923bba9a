package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server         ServerConfig        `toml:"server"`
	Database       DatabaseConfig      `toml:"database"`
	Logs           LogsConfig          `toml:"logs"`
	Metrics        MetricsConfig       `toml:"metrics"`
	VehicleService IntegrationConfig   `toml:"vehicle_service"`
	StaffService   IntegrationConfig   `toml:"staff_service"`
	Booking        BookingWindowConfig `toml:"booking"`
}

type ServerConfig struct {
	HTTPPort     int `toml:"http_port"`
	ReadTimeout  int `toml:"read_timeout"`  // секунды
	WriteTimeout int `toml:"write_timeout"` // секунды
	IdleTimeout  int `toml:"idle_timeout"`  // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingWindowConfig рабочее окно публикации слотов
type BookingWindowConfig struct {
	OpenTime           string `toml:"open_time"`  // "08:00"
	CloseTime          string `toml:"close_time"` // "18:00"
	GranularityMinutes int    `toml:"granularity_minutes"`
}

// ToDomainWindow конвертирует конфигурацию в доменное рабочее окно.
// Пустые значения заполняются дефолтами гаража
func (b BookingWindowConfig) ToDomainWindow() (domain.BookingWindow, error) {
	window := domain.DefaultBookingWindow()

	if b.OpenTime != "" {
		openTime, err := types.NewTimeStringFromString(b.OpenTime)
		if err != nil {
			return window, fmt.Errorf("config: invalid booking open_time %q: %w", b.OpenTime, err)
		}
		window.OpenTime = openTime
	}

	if b.CloseTime != "" {
		closeTime, err := types.NewTimeStringFromString(b.CloseTime)
		if err != nil {
			return window, fmt.Errorf("config: invalid booking close_time %q: %w", b.CloseTime, err)
		}
		window.CloseTime = closeTime
	}

	if b.GranularityMinutes > 0 {
		window.GranularityMinutes = b.GranularityMinutes
	}

	if !window.OpenTime.IsBefore(window.CloseTime) {
		return window, fmt.Errorf("config: booking open_time %s must be before close_time %s",
			window.OpenTime, window.CloseTime)
	}

	return window, nil
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		return nil, fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.host and database.dbname are required")
	}

	return &cfg, nil
}
