package request_appointment

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	requestAppointment "github.com/garagedesk/GMS-AppointmentService/internal/usecase/request_appointment"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// RequestAppointmentRequest HTTP request model
type RequestAppointmentRequest struct {
	MechanicID  int64   `json:"mechanicId"`
	VehicleID   int64   `json:"vehicleId"`
	Date        string  `json:"date"`      // "2026-09-15"
	StartTime   string  `json:"startTime"` // "09:30"
	Reason      string  `json:"reason"`
	Description *string `json:"description,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	ClientID            int64   `json:"clientId"`
	MechanicID          int64   `json:"mechanicId"`
	Date                string  `json:"date"`
	StartTime           string  `json:"startTime"`
	Reason              string  `json:"reason"`
	Description         *string `json:"description,omitempty"`
	Status              string  `json:"status"`
	VehicleBrand        string  `json:"vehicleBrand"`
	VehicleModel        string  `json:"vehicleModel"`
	VehicleLicensePlate string  `json:"vehicleLicensePlate"`
	VehicleYear         *int    `json:"vehicleYear,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RequestAppointmentRequest) ToUseCaseRequest(clientID int64) (*requestAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &requestAppointment.Request{
		ClientID:    clientID,
		MechanicID:  r.MechanicID,
		VehicleID:   r.VehicleID,
		Date:        date,
		StartTime:   startTime,
		Reason:      r.Reason,
		Description: r.Description,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  resp.ID,
		ClientID:            resp.ClientID,
		MechanicID:          resp.MechanicID,
		Date:                resp.Date.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		Reason:              resp.Reason,
		Description:         resp.Description,
		Status:              resp.Status,
		VehicleBrand:        resp.VehicleBrand,
		VehicleModel:        resp.VehicleModel,
		VehicleLicensePlate: resp.VehicleLicensePlate,
		VehicleYear:         resp.VehicleYear,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
}
