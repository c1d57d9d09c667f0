package engine

import "github.com/Real-Lux/Farm-App-sub001/internal/domain/models"

// AvailabilityIndex is a read-only snapshot of the lots loaded from the
// store. Queries preserve the store's insertion order and never mutate the
// underlying lots.
type AvailabilityIndex struct {
	lots []models.Lot
}

// NewAvailabilityIndex builds an index over a lot snapshot.
func NewAvailabilityIndex(lots []models.Lot) *AvailabilityIndex {
	return &AvailabilityIndex{lots: lots}
}

// LotsOffering returns the active lots holding at least one animal of the
// given race, in snapshot order. An empty result is a normal answer, not an
// error.
func (i *AvailabilityIndex) LotsOffering(race string) []models.Lot {
	offering := make([]models.Lot, 0, len(i.lots))
	for _, lot := range i.lots {
		if !lot.Active {
			continue
		}
		if lot.TotalForRace(race) > 0 {
			offering = append(offering, lot)
		}
	}
	return offering
}

// Lot looks a lot up by identifier within the snapshot.
func (i *AvailabilityIndex) Lot(id string) (models.Lot, bool) {
	for _, lot := range i.lots {
		if lot.ID == id {
			return lot, true
		}
	}
	return models.Lot{}, false
}

// RemainingAfter previews how many animals of a race would remain in the lot
// after deducting quantity. The result floors at zero; the lot itself is
// untouched and the authoritative deduction happens in the storage layer when
// an order commits.
func (i *AvailabilityIndex) RemainingAfter(lot models.Lot, race string, quantity int) int {
	remaining := lot.TotalForRace(race) - quantity
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsEstimated reports whether the lot's counts are hatch projections rather
// than confirmed counts.
func (i *AvailabilityIndex) IsEstimated(lot models.Lot) bool {
	return lot.Estimated()
}
