package publish_availability

import (
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
	publishAvailability "github.com/garagedesk/GMS-AppointmentService/internal/usecase/publish_availability"
	"github.com/garagedesk/GMS-AppointmentService/pkg/types"
)

// PublishAvailabilityRequest HTTP request model
type PublishAvailabilityRequest struct {
	Date            string   `json:"date"`            // "2026-09-15"
	Slots           []string `json:"slots,omitempty"` // ["09:00", "09:30"]
	Merge           bool     `json:"merge,omitempty"`
	GenerateFullDay bool     `json:"generateFullDay,omitempty"`
}

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	MechanicID int64    `json:"mechanicId"`
	Date       string   `json:"date"`
	Slots      []string `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PublishAvailabilityRequest) ToUseCaseRequest(mechanicID int64) (*publishAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0, len(r.Slots))
	for _, raw := range r.Slots {
		slot, parseErr := types.NewTimeStringFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		slots = append(slots, slot)
	}

	return &publishAvailability.Request{
		MechanicID:      mechanicID,
		Date:            date,
		Slots:           slots,
		Merge:           r.Merge,
		GenerateFullDay: r.GenerateFullDay,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *publishAvailability.Response) *DayAvailabilityResponse {
	return &DayAvailabilityResponse{
		MechanicID: resp.MechanicID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      resp.Slots,
	}
}
