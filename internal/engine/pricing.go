package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// PriceFor resolves the unit price for an age/sex combination against a
// species pricing table using nearest-age matching.
//
// A male or female request matches entries tagged with the same sex or with
// SexAny. A SexAny request matches SexAny entries only; it never compares
// against sex-specific entries.
//
// Among matching entries the one minimizing |entry age - requested age| wins;
// on an exact tie the earliest entry in the table wins. ok is false when the
// table is empty or no entry matches the sex category; the caller must treat
// that as missing pricing, not as a zero price.
func PriceFor(table models.PricingTable, ageMonths float64, sex models.Sex) (price decimal.Decimal, ok bool) {
	best := -1
	var bestDelta float64

	for i, entry := range table.Entries {
		if sex == models.SexAny {
			if entry.Sex != models.SexAny {
				continue
			}
		} else if entry.Sex != models.SexAny && entry.Sex != sex {
			continue
		}

		delta := math.Abs(entry.AgeMonths - ageMonths)
		if best == -1 || delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}

	if best == -1 {
		return decimal.Decimal{}, false
	}
	return table.Entries[best].Price, true
}
