package cancel_appointment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrAccessDenied запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")
	// ErrIllegalTransition запись уже нельзя отменить
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
