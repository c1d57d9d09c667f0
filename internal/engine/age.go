// Package engine implements the availability and pricing core: age
// projection, nearest-age price lookup, lot ranking, order aggregation and
// collection-date reconciliation. Every operation is a pure function of its
// inputs; lots and pricing tables are never mutated.
package engine

import (
	"math"
	"time"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// daysPerMonth is the average month length used for all age arithmetic.
const daysPerMonth = 30.44

// Age is a structured cohort age. Days is signed: a negative value means the
// cohort has not yet reached the target date. Months and Weeks are the
// display decomposition and never go negative; TotalMonths is the precise
// decimal form used for ranking and pricing.
type Age struct {
	Days        int     `json:"days"`
	Months      int     `json:"months"`
	Weeks       int     `json:"weeks"`
	TotalMonths float64 `json:"total_months"`
}

// AgeBetween computes the age of a cohort with the given reference date at
// the target date. The target may be in the past or the future.
func AgeBetween(reference, target time.Time) Age {
	days := int(math.Floor(target.Sub(reference).Hours() / 24))
	age := Age{
		Days:        days,
		TotalMonths: float64(days) / daysPerMonth,
	}
	if days > 0 {
		age.Months = int(float64(days) / daysPerMonth)
		age.Weeks = int(math.Mod(float64(days), daysPerMonth) / 7)
	}
	return age
}

// ProjectDate computes the calendar date at which a cohort with the given
// reference date reaches the desired age.
func ProjectDate(reference time.Time, desired models.AgeSpec) time.Time {
	totalDays := int(math.Round(desired.TotalMonths() * daysPerMonth))
	return reference.AddDate(0, 0, totalDays)
}

// DecomposeMonths expands a decimal month count into the months/weeks/days
// display form used for age deltas.
func DecomposeMonths(totalMonths float64) Age {
	days := int(math.Round(totalMonths * daysPerMonth))
	return AgeBetween(time.Time{}, time.Time{}.AddDate(0, 0, days))
}
