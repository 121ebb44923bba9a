package request_appointment

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidDate дата записи в прошлом или некорректна
	ErrInvalidDate = errors.New("invalid appointment date")
	// ErrMechanicNotFound механик не найден в StaffService
	ErrMechanicNotFound = errors.New("mechanic not found")
	// ErrMechanicInactive механик не принимает записи
	ErrMechanicInactive = errors.New("mechanic is not active")
	// ErrVehicleNotFound автомобиль клиента не найден в VehicleService
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrSlotNotAvailable слот отсутствует в календаре доступности
	ErrSlotNotAvailable = errors.New("slot is not available")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
