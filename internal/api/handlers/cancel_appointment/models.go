package cancel_appointment

import (
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	cancelAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/cancel_appointment"
)

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	MechanicID int64  `json:"mechanicId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Status     string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		ClientID:   resp.ClientID,
		MechanicID: resp.MechanicID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		Status:     resp.Status,
	}
}
