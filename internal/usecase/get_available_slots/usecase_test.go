package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	booked []types.TimeRange
	err    error
}

func (f *fakeRepo) BookedSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeRange, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booked, nil
}

type fakeProviderClient struct {
	err error
}

func (f *fakeProviderClient) GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &providerservice.Provider{ID: providerID, Approved: true}, nil
}

var testDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestExecute_AllSlotsFree(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeProviderClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotCatalog(), resp.AvailableSlots)
}

func TestExecute_ExcludesBookedPreservesCatalogOrder(t *testing.T) {
	// Занятые слоты приходят из БД в произвольном порядке
	repo := &fakeRepo{booked: []types.TimeRange{"14:00-15:00", "09:00-10:00"}}
	uc := NewUseCase(repo, &fakeProviderClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeRange{
		"10:00-11:00",
		"11:00-12:00",
		"12:00-13:00",
		"13:00-14:00",
		"15:00-16:00",
		"16:00-17:00",
	}, resp.AvailableSlots)
}

func TestExecute_FullyBookedDayReturnsEmptySlice(t *testing.T) {
	repo := &fakeRepo{booked: domain.SlotCatalog()}
	uc := NewUseCase(repo, &fakeProviderClient{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	require.NoError(t, err)

	assert.NotNil(t, resp.AvailableSlots)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_Idempotent(t *testing.T) {
	repo := &fakeRepo{booked: []types.TimeRange{"11:00-12:00"}}
	uc := NewUseCase(repo, &fakeProviderClient{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, first.AvailableSlots, second.AvailableSlots)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeProviderClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProviderID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakeProviderClient{err: providerservice.ErrProviderNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 404, Date: testDate})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection reset")}
	uc := NewUseCase(repo, &fakeProviderClient{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ProviderID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAvailableSlots_IgnoresLabelsOutsideCatalog(t *testing.T) {
	got := availableSlots([]types.TimeRange{"07:00-08:00", "09:00-10:00"})

	assert.Len(t, got, 7)
	assert.NotContains(t, got, types.TimeRange("09:00-10:00"))
}
