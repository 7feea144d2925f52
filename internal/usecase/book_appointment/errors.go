package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("book_appointment: provider not found")

	// ErrSlotUnavailable возвращается, когда слот уже занят.
	// Окончательный отказ: повтор того же запроса не имеет смысла,
	// клиент должен выбрать другой слот
	ErrSlotUnavailable = errors.New("book_appointment: slot is not available")

	// ErrUnavailable возвращается при транзиентных отказах инфраструктуры
	// Запрос безопасно повторить позже
	ErrUnavailable = errors.New("book_appointment: temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
