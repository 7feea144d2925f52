package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pagination constants for provider appointment listings
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// AllStatuses список всех допустимых статусов записи
// Используется для валидации фильтра по статусу
var AllStatuses = []AppointmentStatus{
	StatusBooked,
	StatusCancelled,
}
