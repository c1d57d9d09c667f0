package models

import "time"

// RaceAllocation holds the remaining animal counts for one race inside a lot,
// split by sex.
type RaceAllocation struct {
	Males   int `bson:"males" json:"males"`
	Females int `bson:"females" json:"females"`
}

// Total returns the combined count across both sexes.
func (a RaceAllocation) Total() int {
	return a.Males + a.Females
}

// Estimation carries hatch-projection metadata for lots whose counts are not
// yet confirmed.
type Estimation struct {
	EggCount           int     `bson:"egg_count" json:"egg_count"`
	HatchedCount       int     `bson:"hatched_count" json:"hatched_count"`
	SuccessRatePercent float64 `bson:"success_rate_percent" json:"success_rate_percent"`
}

// Lot is a cohort of animals created or hatched together. The engine only
// reads lots; creation and stock mutation happen in the storage layer.
type Lot struct {
	ID              string                    `bson:"_id" json:"id"`
	SpeciesKey      string                    `bson:"species_key" json:"species_key"`
	ReferenceDate   time.Time                 `bson:"reference_date" json:"reference_date"`
	RaceAllocations map[string]RaceAllocation `bson:"race_allocations" json:"race_allocations"`
	Active          bool                      `bson:"active" json:"active"`
	Estimation      *Estimation               `bson:"estimation,omitempty" json:"estimation,omitempty"`
}

// TotalForRace returns the remaining count for the given race, zero when the
// race is not allocated in this lot.
func (l Lot) TotalForRace(race string) int {
	return l.RaceAllocations[race].Total()
}

// Estimated reports whether the lot's counts are projected from an egg count
// and success rate rather than a confirmed hatch count.
func (l Lot) Estimated() bool {
	e := l.Estimation
	return e != nil && e.EggCount > 0 && e.HatchedCount == 0 && e.SuccessRatePercent > 0
}
