package availability

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	ListByMechanic(ctx context.Context, mechanicID int64, date *time.Time) ([]*domain.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
