package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// slotCatalog is the fixed ordered catalog of bookable slots.
// Eight contiguous one-hour ranges, identical for every provider and every day.
var slotCatalog = []types.TimeRange{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"13:00-14:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

// SlotCatalog returns a copy of the catalog in canonical order
func SlotCatalog() []types.TimeRange {
	out := make([]types.TimeRange, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// IsCatalogSlot returns true if the label is a member of the catalog
func IsCatalogSlot(slot types.TimeRange) bool {
	for _, s := range slotCatalog {
		if s == slot {
			return true
		}
	}
	return false
}
