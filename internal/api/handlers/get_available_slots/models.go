package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID     int64    `json:"providerId"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		ProviderID:     resp.ProviderID,
		Date:           resp.Date.Format(domain.DateFormat),
		AvailableSlots: slots,
	}
}
