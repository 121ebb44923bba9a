package refuse_appointment

import (
	"fmt"
	"strings"

	"github.com/garagedesk/GMS-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность запроса на отклонение
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment ID must be positive, got %d", ErrInvalidInput, req.AppointmentID)
	}

	if req.MechanicID <= 0 {
		return fmt.Errorf("%w: mechanic ID must be positive, got %d", ErrInvalidInput, req.MechanicID)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return fmt.Errorf("%w: refusal reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: refusal reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
