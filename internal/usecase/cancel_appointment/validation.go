package cancel_appointment

import "fmt"

// validateRequest проверяет корректность запроса на отмену
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment ID must be positive, got %d", ErrInvalidInput, req.AppointmentID)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: client ID must be positive, got %d", ErrInvalidInput, req.ClientID)
	}

	return nil
}
