package providerservice

// Provider модель провайдера (врача) из ProviderService
type Provider struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	Approved  bool   `json:"approved"`
}

// ErrorResponse модель ошибки от ProviderService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
