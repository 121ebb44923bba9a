package accept_appointment

import (
	"github.com/garagedesk/GMS-AppointmentService/internal/service/appointments/models"
)

// AcceptAppointmentRequest HTTP request model
type AcceptAppointmentRequest struct {
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	EstimatedCost            float64 `json:"estimatedCost"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Механик берется из контекста аутентификации, а не из тела
func (r *AcceptAppointmentRequest) ToServiceRequest(mechanicID int64) *models.AcceptAppointmentRequest {
	return &models.AcceptAppointmentRequest{
		MechanicID:               mechanicID,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		EstimatedCost:            r.EstimatedCost,
	}
}
