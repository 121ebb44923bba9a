package domain

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusAccepted  AppointmentStatus = "accepted"
	StatusRefused   AppointmentStatus = "refused"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusPaid      AppointmentStatus = "paid"
)

// Appointment represents a client's request to consume a mechanic's time slot
type Appointment struct {
	ID         int64
	ClientID   int64
	MechanicID int64

	Date      time.Time
	StartTime types.TimeString

	Reason      string
	Description *string
	Status      AppointmentStatus

	// Denormalized vehicle snapshot - история не зависит от изменений в гараже клиента
	VehicleBrand        string
	VehicleModel        string
	VehicleLicensePlate string
	VehicleYear         *int

	// Present iff status is accepted or paid
	EstimatedDurationMinutes *int
	EstimatedCost            *float64

	// Present iff status is refused
	RefusalReason *string

	// Present iff an invoice was generated
	InvoiceNumber *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// CanBeCancelled returns true if the client may still cancel
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusRequested
}

// CanBeDecided returns true if the mechanic may still accept or refuse
func (a *Appointment) CanBeDecided() bool {
	return a.Status == StatusRequested
}

// CanBePaid returns true if the appointment is ready to receive a payment completion
func (a *Appointment) CanBePaid() bool {
	return a.Status == StatusAccepted && a.EstimatedCost != nil
}

// IsTerminal returns true for statuses without outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusRefused || s == StatusCancelled || s == StatusPaid
}

// CanTransitionTo encodes the appointment state machine:
// requested -> accepted | refused | cancelled; accepted -> paid
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusRequested:
		return next == StatusAccepted || next == StatusRefused || next == StatusCancelled
	case StatusAccepted:
		return next == StatusPaid
	default:
		return false
	}
}

// MechanicAppointmentsFilter фильтр для получения записей механика
type MechanicAppointmentsFilter struct {
	MechanicID  int64              // Обязательный параметр
	Date        *time.Time         // Фильтр по дате (опционально)
	Status      *AppointmentStatus // Фильтр по статусу (опционально)
	PendingOnly bool               // Только ожидающие решения (status = requested)
	ActiveOnly  bool               // Только записи, удерживающие слот (requested/accepted)
}
