package models

import "github.com/shopspring/decimal"

// PricingEntry is one age-indexed price point inside a species pricing table.
// Sex-specific entries apply to one sex; SexAny entries apply to either.
type PricingEntry struct {
	AgeMonths float64
	Sex       Sex
	Price     decimal.Decimal
}

// PricingTable is the ordered price list for one species. Entry order is
// significant: equidistant age matches resolve to the first entry.
type PricingTable struct {
	SpeciesKey string
	Entries    []PricingEntry
}

// Empty reports whether the table has no usable entries. An empty table means
// "missing pricing" and must be reported, never treated as a zero price.
func (t PricingTable) Empty() bool {
	return len(t.Entries) == 0
}
