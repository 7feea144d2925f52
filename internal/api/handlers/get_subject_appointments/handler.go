package get_subject_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

const msgMissingSubjectID = "отсутствует идентификатор пользователя"

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

// Handle GET /api/v1/users/me/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем subjectID из контекста (через middleware Auth)
	subjectID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/appointments - Missing subject ID")
		handlers.RespondUnauthorized(w, msgMissingSubjectID)
		return
	}

	result, err := h.service.GetSubjectAppointments(r.Context(), subjectID)
	if err != nil {
		h.logger.Error("GET /users/me/appointments - Failed to get appointments: subject_id=%d, error=%v",
			subjectID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/appointments - Appointments retrieved successfully: subject_id=%d, count=%d",
		subjectID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
