package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	providerClient "github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// UseCase use case бронирования слота
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

// Execute выполняет use case бронирования слота.
//
// Никакой проверки "свободен ли слот" перед вставкой здесь нет намеренно:
// предварительное чтение ничего не гарантирует к моменту записи. Единственный
// арбитр - условная вставка под частичным уникальным индексом в хранилище.
// Из N конкурентных запросов на одну тройку (провайдер, дата, слот) ровно один
// получает запись, остальные - детерминированный ErrSlotUnavailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: provider=%d, subject=%d, date=%s, slot=%s",
		req.ProviderID, req.SubjectID, req.Date.Format(domain.DateFormat), req.Slot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		switch {
		case errors.Is(err, providerClient.ErrProviderNotFound):
			uc.logger.Warn("BookAppointment: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		case errors.Is(err, providerClient.ErrUnavailable):
			uc.logger.Error("BookAppointment: provider service unavailable: %v", err)
			return nil, fmt.Errorf("%w: provider service: %v", ErrUnavailable, err)
		default:
			uc.logger.Error("BookAppointment: failed to get provider id=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}
	}

	// 3. Условная вставка: гонку за слот разрешает хранилище
	appt := &domain.Appointment{
		ProviderID: req.ProviderID,
		SubjectID:  req.SubjectID,
		Date:       req.Date,
		Slot:       req.Slot,
		Status:     domain.StatusBooked,
	}

	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("BookAppointment: slot taken: provider=%d, date=%s, slot=%s",
				req.ProviderID, req.Date.Format(domain.DateFormat), req.Slot)
			return nil, ErrSlotUnavailable
		}
		uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("BookAppointment: successfully booked appointment id=%d", created.ID)

	return &Response{
		ID:         created.ID,
		ProviderID: created.ProviderID,
		SubjectID:  created.SubjectID,
		Date:       created.Date,
		Slot:       created.Slot,
		Status:     string(created.Status),
		CreatedAt:  created.CreatedAt,
	}, nil
}
