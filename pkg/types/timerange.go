package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// timeLayout формат времени внутри метки слота
const timeLayout = "15:04"

var (
	// ErrInvalidTimeRange возвращается при некорректном формате метки слота
	ErrInvalidTimeRange = errors.New("types: invalid time range format, expected HH:MM-HH:MM")
)

// TimeRange метка временного слота вида "09:00-10:00"
// Хранится и передается как строка, сравнивается по значению
type TimeRange string

// NewTimeRangeFromString парсит и валидирует метку слота
func NewTimeRangeFromString(s string) (TimeRange, error) {
	tr := TimeRange(s)
	if err := tr.Validate(); err != nil {
		return "", err
	}
	return tr, nil
}

// Validate проверяет формат метки: "HH:MM-HH:MM", конец строго позже начала
func (tr TimeRange) Validate() error {
	parts := strings.Split(string(tr), "-")
	if len(parts) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeRange, string(tr))
	}

	start, err := time.Parse(timeLayout, parts[0])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeRange, string(tr))
	}

	end, err := time.Parse(timeLayout, parts[1])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeRange, string(tr))
	}

	if !end.After(start) {
		return fmt.Errorf("%w: end must be after start in %q", ErrInvalidTimeRange, string(tr))
	}

	return nil
}

// Start возвращает время начала слота в формате HH:MM
// Для невалидной метки возвращает пустую строку
func (tr TimeRange) Start() string {
	parts := strings.Split(string(tr), "-")
	if len(parts) != 2 {
		return ""
	}
	return parts[0]
}

// End возвращает время конца слота в формате HH:MM
func (tr TimeRange) End() string {
	parts := strings.Split(string(tr), "-")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// StartMinutes возвращает начало слота в минутах от полуночи
// Используется для сортировки слотов в порядке каталога
func (tr TimeRange) StartMinutes() int {
	start, err := time.Parse(timeLayout, tr.Start())
	if err != nil {
		return 0
	}
	return start.Hour()*60 + start.Minute()
}

// IsZero возвращает true для пустой метки
func (tr TimeRange) IsZero() bool {
	return tr == ""
}

// String возвращает строковое представление метки
func (tr TimeRange) String() string {
	return string(tr)
}
