package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ProviderID int64  `json:"providerId"`
	Date       string `json:"date"` // "2025-06-01"
	Slot       string `json:"slot"` // "09:00-10:00"
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Message       string `json:"message"`
	AppointmentID int64  `json:"appointmentId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// subjectID берется из контекста аутентификации, а не из тела запроса
func (r *BookAppointmentRequest) ToUseCaseRequest(subjectID int64) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.NewTimeRangeFromString(r.Slot)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		ProviderID: r.ProviderID,
		SubjectID:  subjectID,
		Date:       date,
		Slot:       slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		Message:       "запись успешно создана",
		AppointmentID: resp.ID,
	}
}
