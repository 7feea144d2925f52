package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	BookedSlots(ctx context.Context, providerID int64, date time.Time) ([]types.TimeRange, error)
}

// ProviderServiceClient интерфейс клиента для ProviderService
type ProviderServiceClient interface {
	GetProvider(ctx context.Context, providerID int64) (*providerservice.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
