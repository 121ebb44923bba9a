package cancel_appointment

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// Request запрос клиента на отмену записи
type Request struct {
	AppointmentID int64
	ClientID      int64
}

// Response результат отмены записи
type Response struct {
	ID         int64
	ClientID   int64
	MechanicID int64
	Date       time.Time
	StartTime  types.TimeString
	Status     string
	UpdatedAt  time.Time
}

// FromDomainAppointment конвертирует доменную модель в ответ usecase
func FromDomainAppointment(appt *domain.Appointment) *Response {
	return &Response{
		ID:         appt.ID,
		ClientID:   appt.ClientID,
		MechanicID: appt.MechanicID,
		Date:       appt.Date,
		StartTime:  appt.StartTime,
		Status:     string(appt.Status),
		UpdatedAt:  appt.UpdatedAt,
	}
}
