package engine

import (
	"time"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// SuggestCollectionDate computes the single latest feasible collection date
// for a selection set: for every line with a bound lot, the date at which
// that lot reaches the line's desired age, and across lines the maximum, so
// every cohort has reached at least its desired age by the suggested date.
//
// ok is false when no line carries a bound lot; the caller must not default
// to today.
func SuggestCollectionDate(lines []models.SelectionLine) (suggested time.Time, ok bool) {
	for _, line := range lines {
		if line.BoundLot == nil {
			continue
		}
		candidate := ProjectDate(line.BoundLot.ReferenceDate, line.DesiredAge)
		if !ok || candidate.After(suggested) {
			suggested = candidate
			ok = true
		}
	}
	return suggested, ok
}
