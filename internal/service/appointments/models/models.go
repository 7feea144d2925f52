package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetProviderAppointmentsRequest запрос на получение записей провайдера
type GetProviderAppointmentsRequest struct {
	ProviderID int64
	Date       *time.Time // Фильтр по дате (опционально)
	Status     *string    // Фильтр по статусу (опционально)
	Page       int        // Номер страницы, начиная с 1
	Limit      int        // Размер страницы
}

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *GetProviderAppointmentsRequest) ToDomainFilter() (domain.ProviderAppointmentsFilter, error) {
	filter := domain.ProviderAppointmentsFilter{
		ProviderID: r.ProviderID,
		Date:       r.Date,
		Page:       r.Page,
		Limit:      r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return domain.ProviderAppointmentsFilter{}, err
		}
		filter.Status = &status
	}

	if filter.Page < 1 {
		filter.Page = domain.DefaultPage
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultLimit
	}
	if filter.Limit > domain.MaxLimit {
		filter.Limit = domain.MaxLimit
	}

	return filter, nil
}

// Response модели

// AppointmentResponse представление записи для вызывающей стороны
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	ProviderID  int64   `json:"providerId"`
	SubjectID   int64   `json:"subjectId"`
	Date        string  `json:"date"`
	Slot        string  `json:"slot"`
	Status      string  `json:"status"`
	CancelledAt *string `json:"cancelledAt,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
}

// ProviderAppointmentsResponse страница записей провайдера
type ProviderAppointmentsResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	TotalPages   int                    `json:"totalPages"`
	CurrentPage  int                    `json:"currentPage"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	var cancelledAt *string
	if appt.CancelledAt != nil {
		v := appt.CancelledAt.Format(time.RFC3339)
		cancelledAt = &v
	}

	return &AppointmentResponse{
		ID:          appt.ID,
		ProviderID:  appt.ProviderID,
		SubjectID:   appt.SubjectID,
		Date:        appt.Date.Format(domain.DateFormat),
		Slot:        appt.Slot.String(),
		Status:      string(appt.Status),
		CancelledAt: cancelledAt,
		CreatedAt:   appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   appt.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		out[i] = FromDomainAppointment(appt)
	}
	return &AppointmentListResponse{Appointments: out}
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	for _, s := range domain.AllStatuses {
		if string(s) == status {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}
