package refuse_appointment

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Refuse(ctx context.Context, id int64, reason string) error
}

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	Release(ctx context.Context, mechanicID int64, date time.Time, slot types.TimeString) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий переходов
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
