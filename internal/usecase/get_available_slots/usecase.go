package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// UseCase use case получения свободных слотов провайдера на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	providerClient  ProviderServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		providerClient:  providerClient,
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Результат - моментальный снимок: он может устареть к моменту бронирования,
// фактическую занятость при бронировании решает только хранилище
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s",
		req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		switch {
		case errors.Is(err, providerClient.ErrProviderNotFound):
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		case errors.Is(err, providerClient.ErrUnavailable):
			uc.logger.Error("GetAvailableSlots: provider service unavailable: %v", err)
			return nil, fmt.Errorf("%w: provider service: %v", ErrUnavailable, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}
	}

	// 3. Занятые слоты на дату: только статус booked, отмененные слот не держат
	booked, err := uc.appointmentRepo.BookedSlots(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	// 4. Разность каталога и занятых слотов в порядке каталога
	available := availableSlots(booked)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for provider=%d, date=%s",
		len(available), len(domain.SlotCatalog()), req.ProviderID, req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID:     req.ProviderID,
		Date:           req.Date,
		AvailableSlots: available,
	}, nil
}
