package models

import (
	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// DayAvailabilityResponse открытые слоты механика на одну дату
type DayAvailabilityResponse struct {
	Date  string   `json:"date"`  // "2024-03-20"
	Slots []string `json:"slots"` // ["09:00", "09:30", ...], по возрастанию
}

// AvailabilityListResponse календарь механика
type AvailabilityListResponse struct {
	MechanicID int64                     `json:"mechanicId"`
	Days       []DayAvailabilityResponse `json:"days"`
}

// FromDomainDays конвертирует domain модели в DTO
func FromDomainDays(mechanicID int64, days []*domain.DayAvailability) *AvailabilityListResponse {
	resp := &AvailabilityListResponse{
		MechanicID: mechanicID,
		Days:       make([]DayAvailabilityResponse, len(days)),
	}

	for i, day := range days {
		slots := make([]string, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = slot.String()
		}
		resp.Days[i] = DayAvailabilityResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		}
	}

	return resp
}
