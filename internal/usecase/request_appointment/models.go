package request_appointment

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// Request запрос на создание записи в гараж
type Request struct {
	ClientID    int64
	MechanicID  int64
	VehicleID   int64
	Date        time.Time
	StartTime   types.TimeString
	Reason      string
	Description *string
}

// Response результат создания записи
type Response struct {
	ID                  int64
	ClientID            int64
	MechanicID          int64
	Date                time.Time
	StartTime           types.TimeString
	Reason              string
	Description         *string
	Status              string
	VehicleBrand        string
	VehicleModel        string
	VehicleLicensePlate string
	VehicleYear         *int
	CreatedAt           time.Time
}

// FromDomainAppointment конвертирует доменную модель в ответ usecase
func FromDomainAppointment(appt *domain.Appointment) *Response {
	return &Response{
		ID:                  appt.ID,
		ClientID:            appt.ClientID,
		MechanicID:          appt.MechanicID,
		Date:                appt.Date,
		StartTime:           appt.StartTime,
		Reason:              appt.Reason,
		Description:         appt.Description,
		Status:              string(appt.Status),
		VehicleBrand:        appt.VehicleBrand,
		VehicleModel:        appt.VehicleModel,
		VehicleLicensePlate: appt.VehicleLicensePlate,
		VehicleYear:         appt.VehicleYear,
		CreatedAt:           appt.CreatedAt,
	}
}
