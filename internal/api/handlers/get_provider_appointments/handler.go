package get_provider_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgMissingSubjectID = "отсутствует идентификатор пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
)

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

// Handle GET /api/v1/providers/me/appointments
// Query params: page, limit, date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем providerID из контекста (через middleware Auth)
	providerID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/me/appointments - Missing subject ID")
		handlers.RespondUnauthorized(w, msgMissingSubjectID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		providerID,
		query.Get("page"),
		query.Get("limit"),
		query.Get("date"),
		query.Get("status"),
	)
	if err != nil {
		h.logger.Warn("GET /providers/me/appointments - Invalid parameters: provider_id=%d, error=%v", providerID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetProviderAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /providers/me/appointments - Invalid status filter: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/me/appointments - Failed to get appointments: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/me/appointments - Appointments retrieved successfully: provider_id=%d, count=%d, page=%d",
		providerID, len(result.Appointments), result.CurrentPage)
	handlers.RespondJSON(w, http.StatusOK, result)
}
