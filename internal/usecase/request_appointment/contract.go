package request_appointment

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/vehicleservice"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	Reserve(ctx context.Context, mechanicID int64, date time.Time, slot types.TimeString) (bool, error)
	Release(ctx context.Context, mechanicID int64, date time.Time, slot types.TimeString) error
}

// VehicleServiceClient интерфейс клиента для VehicleService
type VehicleServiceClient interface {
	GetVehicle(ctx context.Context, clientID, vehicleID int64) (*vehicleservice.Vehicle, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetMechanic(ctx context.Context, mechanicID int64) (*staffservice.Mechanic, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий переходов
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
