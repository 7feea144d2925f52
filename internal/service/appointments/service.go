package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис для работы с существующими записями
// Бронирование новых записей живет в usecase book_appointment
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Доступ разрешен владельцу записи и провайдеру, к которому она относится
func (s *Service) GetByID(ctx context.Context, id int64, callerID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for caller=%d", id, callerID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !appt.IsOwnedBy(callerID) && appt.ProviderID != callerID {
		s.logger.Warn("GetByID: access denied for caller=%d to appointment id=%d", callerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appt), nil
}

// GetSubjectAppointments получает все записи пациента, новые первыми
func (s *Service) GetSubjectAppointments(ctx context.Context, subjectID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetSubjectAppointments: fetching appointments for subject=%d", subjectID)

	appts, err := s.appointmentRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		s.logger.Error("GetSubjectAppointments: repository error for subject=%d: %v", subjectID, err)
		return nil, fmt.Errorf("%w: GetSubjectAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSubjectAppointments: fetched %d appointments for subject=%d", len(appts), subjectID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetProviderAppointments получает страницу записей провайдера
// Опционально фильтрует по дате и статусу
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.ProviderAppointmentsResponse, error) {
	s.logger.Info("GetProviderAppointments: provider=%d, page=%d, limit=%d", req.ProviderID, req.Page, req.Limit)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	appts, err := s.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	total, err := s.appointmentRepo.CountByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: count error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - count error: %v", ErrInternal, err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	s.logger.Info("GetProviderAppointments: fetched %d of %d appointments for provider=%d",
		len(appts), total, req.ProviderID)

	return &models.ProviderAppointmentsResponse{
		Appointments: models.FromDomainAppointmentList(appts).Appointments,
		TotalPages:   totalPages,
		CurrentPage:  filter.Page,
	}, nil
}

// Cancel отменяет запись по требованию владельца.
// Выполняется в транзакции с блокировкой строки: проверка владельца и смена
// статуса не могут быть разорваны конкурентной отменой.
// Отмена уже отмененной записи - no-op успех: повтор запроса (например, из-за
// ретрая клиента) не должен превращаться в ошибку
func (s *Service) Cancel(ctx context.Context, appointmentID int64, callerSubjectID int64) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by subject=%d", appointmentID, callerSubjectID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByIDForUpdate(txCtx, appointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !appt.IsOwnedBy(callerSubjectID) {
			return ErrAccessDenied
		}

		if appt.IsCancelled() {
			// Уже отменена - ничего не делаем
			return nil
		}

		if err := s.appointmentRepo.Cancel(txCtx, appointmentID); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
		case errors.Is(err, ErrAccessDenied):
			s.logger.Warn("Cancel: access denied for subject=%d to appointment id=%d", callerSubjectID, appointmentID)
		default:
			s.logger.Error("Cancel: failed to cancel appointment id=%d: %v", appointmentID, err)
		}
		return err
	}

	s.logger.Info("Cancel: appointment id=%d cancelled by subject=%d", appointmentID, callerSubjectID)
	return nil
}
