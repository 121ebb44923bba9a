package staffservice

import "errors"

var (
	// ErrMechanicNotFound возвращается, когда механик не найден
	ErrMechanicNotFound = errors.New("mechanic not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")
)
