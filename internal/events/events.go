package events

import (
	"context"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/google/uuid"
)

// EventType тип события жизненного цикла записи
type EventType string

const (
	TypeAppointmentRequested  EventType = "appointment.requested"
	TypeAppointmentAccepted   EventType = "appointment.accepted"
	TypeAppointmentRefused    EventType = "appointment.refused"
	TypeAppointmentCancelled  EventType = "appointment.cancelled"
	TypeAppointmentPaid       EventType = "appointment.paid"
	TypeAvailabilityPublished EventType = "availability.published"
)

// Event событие успешного перехода, публикуемое после коммита
// Подписчики (аудит, уведомления) не связаны с внутренностями ядра
type Event struct {
	ID            string
	Type          EventType
	AppointmentID int64
	MechanicID    int64
	ClientID      int64
	OldStatus     domain.AppointmentStatus
	NewStatus     domain.AppointmentStatus
	OccurredAt    time.Time
}

// Publisher интерфейс публикации событий переходов
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NewAvailabilityEvent создает событие публикации календаря механика
func NewAvailabilityEvent(mechanicID int64) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       TypeAvailabilityPublished,
		MechanicID: mechanicID,
		OccurredAt: time.Now().UTC(),
	}
}

// NewEvent создает событие с уникальным ID
func NewEvent(eventType EventType, appt *domain.Appointment, oldStatus domain.AppointmentStatus) Event {
	return Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		AppointmentID: appt.ID,
		MechanicID:    appt.MechanicID,
		ClientID:      appt.ClientID,
		OldStatus:     oldStatus,
		NewStatus:     appt.Status,
		OccurredAt:    time.Now().UTC(),
	}
}
