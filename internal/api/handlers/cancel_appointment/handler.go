package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingSubjectID     = "отсутствует идентификатор пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем subjectID из контекста (через middleware Auth)
	subjectID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /appointments/{id} - Missing subject ID: appointment_id=%d", appointmentID)
		handlers.RespondUnauthorized(w, msgMissingSubjectID)
		return
	}

	// Отменяем запись (сервис сам проверит права владельца)
	err = h.service.Cancel(r.Context(), appointmentID, subjectID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: appointment_id=%d, subject_id=%d",
				appointmentID, subjectID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment cancelled successfully: appointment_id=%d, subject_id=%d",
		appointmentID, subjectID)
	handlers.RespondJSON(w, http.StatusOK, CancelResponse{Message: "запись отменена"})
}
