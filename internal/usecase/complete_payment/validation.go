package complete_payment

import "fmt"

// validateRequest проверяет корректность уведомления об оплате
func (uc *UseCase) validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment ID must be positive, got %d", ErrInvalidInput, req.AppointmentID)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %.2f", ErrInvalidInput, req.Amount)
	}

	return nil
}
