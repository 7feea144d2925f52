package book_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.SubjectID <= 0 {
		return fmt.Errorf("%w: subjectID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Slot.IsZero() {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if err := req.Slot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid slot format: %v", ErrInvalidInput, err)
	}

	// Слот должен быть членом фиксированного каталога, произвольные
	// интервалы не принимаются даже в корректном формате
	if !domain.IsCatalogSlot(req.Slot) {
		return fmt.Errorf("%w: slot %q is not in the catalog", ErrInvalidInput, req.Slot)
	}

	return nil
}
