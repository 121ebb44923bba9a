package publish_availability

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate дата публикации в прошлом или некорректна
	ErrInvalidDate = errors.New("invalid availability date")
	// ErrInvalidSlot слот вне рабочего окна или не на сетке
	ErrInvalidSlot = errors.New("invalid slot")
	// ErrMechanicNotFound механик не найден в StaffService
	ErrMechanicNotFound = errors.New("mechanic not found")
	// ErrSlotReserved слот удерживается активной записью
	ErrSlotReserved = errors.New("slot is held by an active appointment")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
