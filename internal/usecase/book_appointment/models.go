package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	ProviderID int64           // ID провайдера (врача)
	SubjectID  int64           // ID пациента, берется из аутентификации
	Date       time.Time       // Дата записи, полночь UTC
	Slot       types.TimeRange // Метка слота из каталога (например, "09:00-10:00")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64           // ID созданной записи
	ProviderID int64           // ID провайдера
	SubjectID  int64           // ID пациента
	Date       time.Time       // Дата записи
	Slot       types.TimeRange // Метка слота
	Status     string          // Статус записи (booked)
	CreatedAt  time.Time       // Время создания
}
