package complete_payment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrAppointmentNotFound запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrNotPayable оплатить можно только принятую запись с оценкой работ
	ErrNotPayable = errors.New("appointment is not payable")
	// ErrInvoiceExists счет на запись уже выписан
	ErrInvoiceExists = errors.New("invoice already exists")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
