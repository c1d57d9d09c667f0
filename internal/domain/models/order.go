package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelectionLine is one race/sex request inside an order being built. BoundLot
// is the lot chosen by the user or auto-selected by the ranker; nil means no
// matching lot was found and pricing falls back to the desired age.
type SelectionLine struct {
	SpeciesKey    string
	Race          string
	SexPreference Sex
	Quantity      int
	DesiredAge    AgeSpec
	BoundLot      *Lot
}

// PricedLine pairs a selection with the unit price and line total resolved
// against the species pricing table.
type PricedLine struct {
	Line      SelectionLine
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// PricedProductLine is a catalog product line with its computed total.
type PricedProductLine struct {
	Product   Product
	Quantity  int
	LineTotal decimal.Decimal
}

// OrderPriceBreakdown is the derived pricing result for a selection set.
// Lines contains only selections that could be priced; species whose pricing
// table is missing or yielded no match are listed (once, sorted) in
// MissingPricingSpecies and contribute nothing to GrandTotal.
type OrderPriceBreakdown struct {
	Lines                 []PricedLine
	ProductLines          []PricedProductLine
	GrandTotal            decimal.Decimal
	MissingPricingSpecies []string
}

// Incomplete reports whether any species could not be priced.
func (b OrderPriceBreakdown) Incomplete() bool {
	return len(b.MissingPricingSpecies) > 0
}

// OrderRecord is the payload handed to the order store once a selection set
// is confirmed. The engine produces it; persistence and stock deduction
// belong to the storage layer.
type OrderRecord struct {
	ID                      string
	Client                  string
	Selections              []SelectionLine
	Products                []ProductLine
	Breakdown               OrderPriceBreakdown
	DeliveryDate            *time.Time
	SuggestedCollectionDate *time.Time
	CreatedAt               time.Time
}
