package get_available_slots

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// availableSlots вычисляет разность каталога и занятых слотов.
// Порядок результата - порядок каталога, занятые метки вне каталога игнорируются.
// Полностью занятый день дает пустой слайс, а не nil
func availableSlots(booked []types.TimeRange) []types.TimeRange {
	taken := make(map[types.TimeRange]struct{}, len(booked))
	for _, slot := range booked {
		taken[slot] = struct{}{}
	}

	available := make([]types.TimeRange, 0, len(domain.SlotCatalog()))
	for _, slot := range domain.SlotCatalog() {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}
