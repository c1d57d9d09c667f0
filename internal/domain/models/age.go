package models

import "math"

// weeksPerMonth is the average number of weeks in a month, used to fold a
// months+weeks age into a single decimal figure.
const weeksPerMonth = 4.33

// AgeSpec is a user-facing desired age expressed in whole months and weeks.
type AgeSpec struct {
	Months int `bson:"months" json:"months" binding:"gte=0"`
	Weeks  int `bson:"weeks" json:"weeks" binding:"gte=0"`
}

// TotalMonths folds the spec into a single decimal month count.
func (a AgeSpec) TotalMonths() float64 {
	return float64(a.Months) + float64(a.Weeks)/weeksPerMonth
}

// AgeSpecFromMonths converts a decimal month count back into a months+weeks
// spec. The fractional part maps onto quarter-month steps, so a value such as
// 2.5 round-trips to {2 months, 2 weeks}.
func AgeSpecFromMonths(totalMonths float64) AgeSpec {
	if totalMonths < 0 {
		return AgeSpec{}
	}
	months := int(math.Floor(totalMonths))
	weeks := int(math.Round((totalMonths - float64(months)) * 4))
	return AgeSpec{Months: months, Weeks: weeks}
}
