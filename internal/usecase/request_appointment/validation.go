package request_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность запроса на создание записи
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client ID must be positive, got %d", ErrInvalidInput, req.ClientID)
	}

	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanic ID must be positive, got %d", ErrInvalidInput, req.MechanicID)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicle ID must be positive, got %d", ErrInvalidInput, req.VehicleID)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, string(req.StartTime))
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if req.Description != nil && len(*req.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return uc.validateDate(req.Date)
}

// validateDate проверяет, что дата записи не в прошлом
func (uc *UseCase) validateDate(date time.Time) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return nil
}
