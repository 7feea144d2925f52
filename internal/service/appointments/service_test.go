package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID map[int64]*domain.Appointment

	bySubject  []*domain.Appointment
	byProvider []*domain.Appointment
	total      int64

	cancelCalls []int64
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *appt
	return &out, nil
}

func (f *fakeRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepo) GetBySubjectID(ctx context.Context, subjectID int64) ([]*domain.Appointment, error) {
	return f.bySubject, nil
}

func (f *fakeRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.byProvider, nil
}

func (f *fakeRepo) CountByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) (int64, error) {
	return f.total, nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64) error {
	appt, ok := f.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelCalls = append(f.cancelCalls, id)
	appt.Status = domain.StatusCancelled
	now := time.Now()
	appt.CancelledAt = &now
	return nil
}

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func bookedAppointment(id, providerID, subjectID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:         id,
		ProviderID: providerID,
		SubjectID:  subjectID,
		Date:       testDate,
		Slot:       "09:00-10:00",
		Status:     domain.StatusBooked,
	}
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{
		1: bookedAppointment(1, 10, 100),
	}}
	svc := newService(repo)

	// Владелец
	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "09:00-10:00", resp.Slot)

	// Провайдер
	_, err = svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)

	// Посторонний
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{byID: map[int64]*domain.Appointment{}})

	_, err := svc.GetByID(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_Success(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{
		1: bookedAppointment(1, 10, 100),
	}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), 1, 100)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.cancelCalls)
	assert.Equal(t, domain.StatusCancelled, repo.byID[1].Status)
	assert.NotNil(t, repo.byID[1].CancelledAt)
}

func TestCancel_NotOwner(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{
		1: bookedAppointment(1, 10, 100),
	}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), 1, 200)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Запись осталась активной
	assert.Empty(t, repo.cancelCalls)
	assert.Equal(t, domain.StatusBooked, repo.byID[1].Status)
}

func TestCancel_NotFound(t *testing.T) {
	svc := newService(&fakeRepo{byID: map[int64]*domain.Appointment{}})

	err := svc.Cancel(context.Background(), 42, 100)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_AlreadyCancelledIsNoop(t *testing.T) {
	appt := bookedAppointment(1, 10, 100)
	appt.Status = domain.StatusCancelled
	repo := &fakeRepo{byID: map[int64]*domain.Appointment{1: appt}}
	svc := newService(repo)

	err := svc.Cancel(context.Background(), 1, 100)
	require.NoError(t, err)

	// Повторная отмена не трогает хранилище
	assert.Empty(t, repo.cancelCalls)
}

func TestGetProviderAppointments_Pagination(t *testing.T) {
	repo := &fakeRepo{
		byProvider: []*domain.Appointment{
			bookedAppointment(1, 10, 100),
			bookedAppointment(2, 10, 101),
		},
		total: 25,
	}
	svc := newService(repo)

	resp, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		ProviderID: 10,
		Page:       2,
		Limit:      10,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Appointments, 2)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestGetProviderAppointments_InvalidStatusFilter(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
		ProviderID: 10,
		Status:     ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSubjectAppointments(t *testing.T) {
	repo := &fakeRepo{bySubject: []*domain.Appointment{
		bookedAppointment(1, 10, 100),
	}}
	svc := newService(repo)

	resp, err := svc.GetSubjectAppointments(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(100), resp.Appointments[0].SubjectID)
}
