package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("get_available_slots: provider not found")

	// ErrUnavailable возвращается при транзиентных отказах инфраструктуры
	ErrUnavailable = errors.New("get_available_slots: temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
