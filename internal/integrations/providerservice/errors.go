package providerservice

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден или не одобрен
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("providerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("providerservice client: invalid response")

	// ErrUnavailable возвращается, когда ProviderService недоступен или не ответил вовремя
	// Вызывающая сторона может безопасно повторить запрос
	ErrUnavailable = errors.New("providerservice client: service unavailable")
)
