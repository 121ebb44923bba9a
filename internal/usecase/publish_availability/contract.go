package publish_availability

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/internal/events"
	"github.com/garagedesk/GMS-AppointmentService/internal/integrations/staffservice"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория календаря доступности
type AvailabilityRepository interface {
	UpsertSlots(ctx context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error
	ReplaceDay(ctx context.Context, mechanicID int64, date time.Time, slots []types.TimeString) error
	ListByMechanic(ctx context.Context, mechanicID int64, date *time.Time) ([]*domain.DayAvailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByMechanicWithFilter(ctx context.Context, filter domain.MechanicAppointmentsFilter) ([]*domain.Appointment, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetMechanic(ctx context.Context, mechanicID int64) (*staffservice.Mechanic, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
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
