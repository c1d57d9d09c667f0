package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// QuoteInput is the selection set handed to the aggregator: animal selection
// lines, optional flat-rate product lines, and the delivery date used to
// correct ages for lot-bound lines (nil when unknown).
type QuoteInput struct {
	Selections   []models.SelectionLine
	Products     []models.ProductLine
	DeliveryDate *time.Time
}

// Aggregator turns a selection set into an itemized price breakdown.
type Aggregator struct {
	tables map[string]models.PricingTable
}

// NewAggregator builds an aggregator over a species→table map.
func NewAggregator(tables map[string]models.PricingTable) *Aggregator {
	return &Aggregator{tables: tables}
}

// Price computes the per-line prices and grand total for the input.
//
// The age used to price a line is the bound lot's age at the delivery date
// when both are known, otherwise the line's raw desired age. Species with an
// absent or empty pricing table, and species whose table yields no match for
// a line's sex category, are reported once in MissingPricingSpecies; their
// lines contribute nothing to the total and the breakdown is flagged
// incomplete rather than silently underpriced.
//
// Price is a pure function: repeated calls on unchanged input produce
// identical breakdowns.
func (a *Aggregator) Price(in QuoteInput) models.OrderPriceBreakdown {
	breakdown := models.OrderPriceBreakdown{
		Lines:      make([]models.PricedLine, 0, len(in.Selections)),
		GrandTotal: decimal.Zero,
	}
	missing := make(map[string]struct{})

	for _, line := range in.Selections {
		table, ok := a.tables[line.SpeciesKey]
		if !ok || table.Empty() {
			missing[line.SpeciesKey] = struct{}{}
			continue
		}

		ageMonths := line.DesiredAge.TotalMonths()
		if line.BoundLot != nil && in.DeliveryDate != nil {
			ageMonths = AgeBetween(line.BoundLot.ReferenceDate, *in.DeliveryDate).TotalMonths
		}

		unitPrice, ok := PriceFor(table, ageMonths, line.SexPreference)
		if !ok {
			// No entry for this sex category: same outcome as a missing table.
			missing[line.SpeciesKey] = struct{}{}
			continue
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		breakdown.Lines = append(breakdown.Lines, models.PricedLine{
			Line:      line,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
		breakdown.GrandTotal = breakdown.GrandTotal.Add(lineTotal)
	}

	for _, product := range in.Products {
		lineTotal := product.Product.UnitPrice.Mul(decimal.NewFromInt(int64(product.Quantity)))
		breakdown.ProductLines = append(breakdown.ProductLines, models.PricedProductLine{
			Product:   product.Product,
			Quantity:  product.Quantity,
			LineTotal: lineTotal,
		})
		breakdown.GrandTotal = breakdown.GrandTotal.Add(lineTotal)
	}

	breakdown.MissingPricingSpecies = make([]string, 0, len(missing))
	for species := range missing {
		breakdown.MissingPricingSpecies = append(breakdown.MissingPricingSpecies, species)
	}
	sort.Strings(breakdown.MissingPricingSpecies)

	return breakdown
}
