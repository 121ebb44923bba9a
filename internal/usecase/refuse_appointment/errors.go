package refuse_appointment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAccessDenied запись адресована другому механику
	ErrAccessDenied = errors.New("access denied")
	// ErrIllegalTransition запись не в статусе requested
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
