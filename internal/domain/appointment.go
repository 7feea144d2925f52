package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a reserved slot of a provider on a calendar day.
// The pair (ProviderID, Date, Slot) may have at most one appointment in
// booked status at any instant; the constraint is enforced by the storage layer.
type Appointment struct {
	ID         int64
	ProviderID int64
	SubjectID  int64
	Date       time.Time // calendar day, midnight UTC
	Slot       types.TimeRange
	Status     AppointmentStatus

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked returns true if the appointment holds its slot
func (a *Appointment) IsBooked() bool {
	return a.Status == StatusBooked
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsOwnedBy returns true if the appointment belongs to the given subject
func (a *Appointment) IsOwnedBy(subjectID int64) bool {
	return a.SubjectID == subjectID
}

// ProviderAppointmentsFilter фильтр для выборки записей провайдера
type ProviderAppointmentsFilter struct {
	ProviderID int64              // Обязательный параметр
	Date       *time.Time         // Фильтр по дате (опционально)
	Status     *AppointmentStatus // Фильтр по статусу (опционально)
	Page       int                // Номер страницы, начиная с 1
	Limit      int                // Размер страницы
}
