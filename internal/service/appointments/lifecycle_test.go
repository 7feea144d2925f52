package appointments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// memStore реализует контракты репозитория для use case'ов и сервиса
// поверх одной карты, сохраняя инвариант уникальности активного слота
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Appointment
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]*domain.Appointment{}}
}

func (s *memStore) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Status == domain.StatusBooked &&
			row.ProviderID == appt.ProviderID &&
			row.Date.Equal(appt.Date) &&
			row.Slot == appt.Slot {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	s.nextID++
	stored := *appt
	stored.ID = s.nextID
	stored.Status = domain.StatusBooked
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.rows[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *memStore) BookedSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var slots []types.TimeRange
	for _, row := range s.rows {
		if row.Status == domain.StatusBooked && row.ProviderID == providerID && row.Date.Equal(date) {
			slots = append(slots, row.Slot)
		}
	}
	return slots, nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *row
	return &out, nil
}

func (s *memStore) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) GetBySubjectID(ctx context.Context, subjectID int64) ([]*domain.Appointment, error) {
	return nil, nil
}

func (s *memStore) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	return nil, nil
}

func (s *memStore) CountByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) (int64, error) {
	return 0, nil
}

func (s *memStore) Cancel(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok || row.Status != domain.StatusBooked {
		return appointmentRepo.ErrAppointmentNotFound
	}
	row.Status = domain.StatusCancelled
	now := time.Now()
	row.CancelledAt = &now
	row.UpdatedAt = now
	return nil
}

type approvedProviderClient struct{}

func (approvedProviderClient) GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error) {
	return &providerservice.Provider{ID: providerID, FullName: "Dr. Smith", Approved: true}, nil
}

// Полный жизненный цикл: занять все слоты дня, убедиться что свободных нет,
// отменить одну запись и увидеть ее слот снова свободным
func TestLifecycle_BookAllCancelOneSlotReturns(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	bookUC := bookAppointment.NewUseCase(store, approvedProviderClient{}, nopLogger{})
	slotsUC := getAvailableSlots.NewUseCase(store, approvedProviderClient{}, nopLogger{})
	svc := NewService(store, fakeTxManager{}, nopLogger{})

	const providerID = int64(10)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := domain.SlotCatalog()

	// Занимаем все слоты дня разными пациентами
	apptIDs := make(map[types.TimeRange]int64, len(catalog))
	for i, slot := range catalog {
		resp, err := bookUC.Execute(ctx, &bookAppointment.Request{
			ProviderID: providerID,
			SubjectID:  int64(100 + i),
			Date:       date,
			Slot:       slot,
		})
		require.NoError(t, err, "slot %s", slot)
		apptIDs[slot] = resp.ID
	}

	// Свободных слотов не осталось
	slots, err := slotsUC.Execute(ctx, &getAvailableSlots.Request{ProviderID: providerID, Date: date})
	require.NoError(t, err)
	assert.Empty(t, slots.AvailableSlots)

	// Повторная попытка занять любой слот отклоняется
	_, err = bookUC.Execute(ctx, &bookAppointment.Request{
		ProviderID: providerID,
		SubjectID:  999,
		Date:       date,
		Slot:       catalog[3],
	})
	assert.ErrorIs(t, err, bookAppointment.ErrSlotUnavailable)

	// Владелец отменяет запись на 12:00-13:00
	cancelled := catalog[3]
	err = svc.Cancel(ctx, apptIDs[cancelled], int64(100+3))
	require.NoError(t, err)

	// Отмененный слот снова свободен, и только он
	slots, err = slotsUC.Execute(ctx, &getAvailableSlots.Request{ProviderID: providerID, Date: date})
	require.NoError(t, err)
	require.Len(t, slots.AvailableSlots, 1)
	assert.Equal(t, cancelled, slots.AvailableSlots[0])

	// Освободившийся слот можно занять заново
	resp, err := bookUC.Execute(ctx, &bookAppointment.Request{
		ProviderID: providerID,
		SubjectID:  999,
		Date:       date,
		Slot:       cancelled,
	})
	require.NoError(t, err)
	assert.NotEqual(t, apptIDs[cancelled], resp.ID)
}
