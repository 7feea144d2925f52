package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ProviderID int64     // ID провайдера (врача)
	Date       time.Time // Дата, полночь UTC
}

// Response модель ответа со списком свободных слотов
type Response struct {
	ProviderID     int64             // ID провайдера
	Date           time.Time         // Дата, на которую запрашивались слоты
	AvailableSlots []types.TimeRange // Свободные слоты в порядке каталога
}
