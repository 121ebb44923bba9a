package refuse_appointment

import (
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	refuseAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/refuse_appointment"
)

// RefuseAppointmentRequest HTTP request model
type RefuseAppointmentRequest struct {
	Reason string `json:"reason"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	ClientID      int64   `json:"clientId"`
	MechanicID    int64   `json:"mechanicId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	RefusalReason *string `json:"refusalReason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *RefuseAppointmentRequest) ToUseCaseRequest(appointmentID, mechanicID int64) *refuseAppointment.Request {
	return &refuseAppointment.Request{
		AppointmentID: appointmentID,
		MechanicID:    mechanicID,
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *refuseAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		ClientID:      resp.ClientID,
		MechanicID:    resp.MechanicID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Status:        resp.Status,
		RefusalReason: resp.RefusalReason,
	}
}
