package engine

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// optimalToleranceMonths is the fixed age-delta tolerance (roughly two weeks)
// under which a lot is flagged optimal for a request.
const optimalToleranceMonths = 0.5

// SuggestionRequest describes a lot search: which race, at what age, how
// many, delivered when. A nil DeliveryDate means "today". An empty
// SexPreference is treated as SexAny.
type SuggestionRequest struct {
	Race          string
	DesiredAge    models.AgeSpec
	Quantity      int
	DeliveryDate  *time.Time
	SexPreference models.Sex
}

// Suggestion is one ranked candidate lot for a request.
type Suggestion struct {
	Lot models.Lot `json:"lot"`

	// AgeAtDelivery is the lot's age in decimal months at the delivery date.
	AgeAtDelivery float64 `json:"age_at_delivery"`
	// AgeDifference is |AgeAtDelivery - desired age| in decimal months;
	// AgeDifferenceParts is its months/weeks/days display decomposition.
	AgeDifference      float64 `json:"age_difference"`
	AgeDifferenceParts Age     `json:"age_difference_parts"`
	// RemainingAfterOrder previews the stock left if the requested quantity
	// were taken from this lot.
	RemainingAfterOrder int `json:"remaining_after_order"`
	// TargetDate is the calendar date at which this lot reaches the desired
	// age, independent of the requested delivery date.
	TargetDate time.Time `json:"target_date"`
	// Optimal is set when the age delta falls within the fixed tolerance.
	Optimal bool `json:"optimal"`
	// ActuallyAvailable is false for cohorts whose reference date is still in
	// the future relative to today: rankable for future deliveries, but not
	// deliverable now.
	ActuallyAvailable bool `json:"actually_available"`
	// Estimated mirrors the lot's hatch-projection flag.
	Estimated bool `json:"estimated"`

	// UnitPrice is the nearest-age price for the request when the species has
	// a usable pricing table; Priced is false otherwise.
	UnitPrice decimal.Decimal `json:"unit_price"`
	Priced    bool            `json:"priced"`
}

// Ranker combines the availability index and the pricing tables to answer
// lot suggestion queries.
type Ranker struct {
	index  *AvailabilityIndex
	tables map[string]models.PricingTable
}

// NewRanker builds a ranker over a lot snapshot and a species→table map.
func NewRanker(index *AvailabilityIndex, tables map[string]models.PricingTable) *Ranker {
	return &Ranker{index: index, tables: tables}
}

// Suggest returns the candidate lots for the request sorted by age delta,
// closest first. Ties keep snapshot order (stable sort), so repeated calls on
// unchanged data yield identical orderings. An empty slice means no active
// lot offers the race.
func (r *Ranker) Suggest(req SuggestionRequest, now time.Time) []Suggestion {
	delivery := now
	if req.DeliveryDate != nil {
		delivery = *req.DeliveryDate
	}
	sex := req.SexPreference
	if sex == "" {
		sex = models.SexAny
	}
	desired := req.DesiredAge.TotalMonths()

	candidates := r.index.LotsOffering(req.Race)
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, lot := range candidates {
		atDelivery := AgeBetween(lot.ReferenceDate, delivery)
		diff := math.Abs(atDelivery.TotalMonths - desired)

		s := Suggestion{
			Lot:                 lot,
			AgeAtDelivery:       atDelivery.TotalMonths,
			AgeDifference:       diff,
			AgeDifferenceParts:  DecomposeMonths(diff),
			RemainingAfterOrder: r.index.RemainingAfter(lot, req.Race, req.Quantity),
			TargetDate:          ProjectDate(lot.ReferenceDate, req.DesiredAge),
			Optimal:             diff <= optimalToleranceMonths,
			ActuallyAvailable:   AgeBetween(lot.ReferenceDate, now).Days >= 0,
			Estimated:           lot.Estimated(),
		}

		if table, ok := r.tables[lot.SpeciesKey]; ok {
			s.UnitPrice, s.Priced = PriceFor(table, atDelivery.TotalMonths, sex)
		}

		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].AgeDifference < suggestions[b].AgeDifference
	})
	return suggestions
}

// AutoSelect picks the single best lot for the request: the head of the
// ranked list. ok is false when no lot offers the race; the caller must
// surface that as "no matching lot" and leave the selection unbound rather
// than defaulting to a zero price.
func (r *Ranker) AutoSelect(req SuggestionRequest, now time.Time) (Suggestion, bool) {
	suggestions := r.Suggest(req, now)
	if len(suggestions) == 0 {
		return Suggestion{}, false
	}
	return suggestions[0], true
}
