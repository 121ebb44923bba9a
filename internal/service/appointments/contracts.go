package appointments

import (
	"context"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByMechanicWithFilter(ctx context.Context, filter domain.MechanicAppointmentsFilter) ([]*domain.Appointment, error)
	Accept(ctx context.Context, id int64, durationMinutes int, cost float64) error
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
