package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProviderNotFound   = "провайдер не найден"
	msgServiceUnavailable = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/slots - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /providers/{id}/slots - Missing date: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(providerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/slots - Invalid date format: provider_id=%d, date=%s", providerID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/slots - Invalid input: provider_id=%d", providerID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/slots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrUnavailable):
			h.logger.Warn("GET /providers/{id}/slots - Temporarily unavailable: provider_id=%d, error=%v", providerID, err)
			handlers.RespondServiceUnavailable(w, msgServiceUnavailable)

		default:
			h.logger.Error("GET /providers/{id}/slots - Failed to get slots: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/slots - Slots retrieved successfully: provider_id=%d, date=%s, slots_count=%d",
		providerID, dateStr, len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
