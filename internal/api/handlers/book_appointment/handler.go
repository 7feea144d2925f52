package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrSlot  = "некорректная дата или слот, ожидается дата YYYY-MM-DD и слот HH:MM-HH:MM"
	msgMissingSubjectID   = "отсутствует идентификатор пользователя"
	msgSlotUnavailable    = "выбранный слот недоступен"
	msgProviderNotFound   = "провайдер не найден"
	msgServiceUnavailable = "сервис временно недоступен, повторите запрос позже"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем subjectID из контекста (через middleware Auth)
	subjectID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing subject ID")
		handlers.RespondUnauthorized(w, msgMissingSubjectID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и слота)
	useCaseReq, err := req.ToUseCaseRequest(subjectID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: subject_id=%d, error=%v", subjectID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /appointments - Slot unavailable: subject_id=%d, provider_id=%d, date=%s, slot=%s",
				subjectID, req.ProviderID, req.Date, req.Slot)
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: subject_id=%d, provider_id=%d", subjectID, req.ProviderID)
			handlers.RespondBadRequest(w, msgInvalidDateOrSlot)

		case errors.Is(err, bookAppointment.ErrProviderNotFound):
			h.logger.Warn("POST /appointments - Provider not found: subject_id=%d, provider_id=%d", subjectID, req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, bookAppointment.ErrUnavailable):
			h.logger.Warn("POST /appointments - Temporarily unavailable: subject_id=%d, provider_id=%d, error=%v",
				subjectID, req.ProviderID, err)
			handlers.RespondServiceUnavailable(w, msgServiceUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: subject_id=%d, provider_id=%d, error=%v",
				subjectID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment booked successfully: appointment_id=%d, subject_id=%d, provider_id=%d",
		result.ID, subjectID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
