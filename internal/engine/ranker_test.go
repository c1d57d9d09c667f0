package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

func leghornTables() map[string]models.PricingTable {
	return map[string]models.PricingTable{"chicken": leghornTable()}
}

func TestSuggestAgeAtDelivery(t *testing.T) {
	lot := chickenLot("lot-1", date(2024, time.January, 1), 5, 5)
	ranker := NewRanker(NewAvailabilityIndex([]models.Lot{lot}), leghornTables())
	now := date(2024, time.February, 1)

	// Delivery three months after the reference date: too old for a
	// two-month request.
	delivery := date(2024, time.April, 1)
	suggestions := ranker.Suggest(SuggestionRequest{
		Race:         "Leghorn",
		DesiredAge:   models.AgeSpec{Months: 2},
		Quantity:     4,
		DeliveryDate: &delivery,
	}, now)

	require.Len(t, suggestions, 1)
	s := suggestions[0]
	assert.InDelta(t, 2.99, s.AgeAtDelivery, 0.01)
	assert.InDelta(t, 0.99, s.AgeDifference, 0.01)
	assert.False(t, s.Optimal)
	assert.Equal(t, 6, s.RemainingAfterOrder)
	assert.Equal(t, date(2024, time.March, 2), s.TargetDate)
	assert.True(t, s.ActuallyAvailable)

	// Delivery at almost exactly two months of age: optimal.
	delivery = date(2024, time.March, 2)
	suggestions = ranker.Suggest(SuggestionRequest{
		Race:         "Leghorn",
		DesiredAge:   models.AgeSpec{Months: 2},
		Quantity:     4,
		DeliveryDate: &delivery,
	}, now)

	require.Len(t, suggestions, 1)
	assert.InDelta(t, 0.0, suggestions[0].AgeDifference, 0.01)
	assert.True(t, suggestions[0].Optimal)
}

func TestSuggestOrdering(t *testing.T) {
	// Three lots at different ages; ranking is by age delta ascending and
	// must be stable across runs.
	lots := []models.Lot{
		chickenLot("old", date(2023, time.August, 1), 5, 5),
		chickenLot("close", date(2024, time.January, 1), 5, 5),
		chickenLot("young", date(2024, time.February, 15), 5, 5),
	}
	ranker := NewRanker(NewAvailabilityIndex(lots), leghornTables())
	now := date(2024, time.March, 2)

	req := SuggestionRequest{
		Race:       "Leghorn",
		DesiredAge: models.AgeSpec{Months: 2},
		Quantity:   2,
	}

	first := ranker.Suggest(req, now)
	require.Len(t, first, 3)
	assert.Equal(t, "close", first[0].Lot.ID)

	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1].AgeDifference, first[i].AgeDifference)
	}

	second := ranker.Suggest(req, now)
	for i := range first {
		assert.Equal(t, first[i].Lot.ID, second[i].Lot.ID, "ranking must be deterministic")
	}
}

func TestSuggestTieKeepsSnapshotOrder(t *testing.T) {
	// Two lots with identical reference dates tie on age delta; the snapshot
	// order decides.
	ref := date(2024, time.January, 1)
	lots := []models.Lot{
		chickenLot("first", ref, 5, 5),
		chickenLot("second", ref, 5, 5),
	}
	ranker := NewRanker(NewAvailabilityIndex(lots), leghornTables())

	suggestions := ranker.Suggest(SuggestionRequest{
		Race:       "Leghorn",
		DesiredAge: models.AgeSpec{Months: 1},
		Quantity:   1,
	}, date(2024, time.February, 1))

	require.Len(t, suggestions, 2)
	assert.Equal(t, "first", suggestions[0].Lot.ID)
	assert.Equal(t, "second", suggestions[1].Lot.ID)
}

func TestSuggestNoCandidates(t *testing.T) {
	ranker := NewRanker(NewAvailabilityIndex(nil), leghornTables())

	suggestions := ranker.Suggest(SuggestionRequest{
		Race:       "Leghorn",
		DesiredAge: models.AgeSpec{Months: 2},
		Quantity:   1,
	}, date(2024, time.March, 1))

	require.NotNil(t, suggestions)
	assert.Empty(t, suggestions)

	_, ok := ranker.AutoSelect(SuggestionRequest{Race: "Leghorn", Quantity: 1}, date(2024, time.March, 1))
	assert.False(t, ok)
}

func TestSuggestFutureCohort(t *testing.T) {
	// A cohort whose reference date is still ahead of today is rankable for
	// future deliveries but flagged as not yet available.
	lot := chickenLot("future", date(2024, time.June, 1), 5, 5)
	ranker := NewRanker(NewAvailabilityIndex([]models.Lot{lot}), leghornTables())
	now := date(2024, time.March, 1)

	delivery := date(2024, time.August, 1)
	suggestions := ranker.Suggest(SuggestionRequest{
		Race:         "Leghorn",
		DesiredAge:   models.AgeSpec{Months: 2},
		Quantity:     2,
		DeliveryDate: &delivery,
	}, now)

	require.Len(t, suggestions, 1)
	assert.False(t, suggestions[0].ActuallyAvailable)
	assert.True(t, suggestions[0].Optimal)
}

func TestSuggestCarriesPriceAndFlags(t *testing.T) {
	lot := chickenLot("est", date(2024, time.January, 1), 0, 5)
	lot.Estimation = &models.Estimation{EggCount: 20, SuccessRatePercent: 75}
	ranker := NewRanker(NewAvailabilityIndex([]models.Lot{lot}), leghornTables())

	delivery := date(2024, time.February, 1)
	suggestions := ranker.Suggest(SuggestionRequest{
		Race:          "Leghorn",
		DesiredAge:    models.AgeSpec{Months: 1},
		Quantity:      2,
		DeliveryDate:  &delivery,
		SexPreference: models.SexFemale,
	}, delivery)

	require.Len(t, suggestions, 1)
	s := suggestions[0]
	assert.True(t, s.Estimated)
	require.True(t, s.Priced)
	assert.True(t, price(10).Equal(s.UnitPrice))

	// Without a pricing table the suggestion stays unpriced rather than
	// carrying a zero.
	bare := NewRanker(NewAvailabilityIndex([]models.Lot{lot}), nil)
	suggestions = bare.Suggest(SuggestionRequest{
		Race:         "Leghorn",
		DesiredAge:   models.AgeSpec{Months: 1},
		Quantity:     2,
		DeliveryDate: &delivery,
	}, delivery)
	require.Len(t, suggestions, 1)
	assert.False(t, suggestions[0].Priced)
}

func TestAutoSelectPicksClosest(t *testing.T) {
	lots := []models.Lot{
		chickenLot("far", date(2023, time.June, 1), 5, 5),
		chickenLot("near", date(2024, time.January, 1), 5, 5),
	}
	ranker := NewRanker(NewAvailabilityIndex(lots), leghornTables())

	best, ok := ranker.AutoSelect(SuggestionRequest{
		Race:       "Leghorn",
		DesiredAge: models.AgeSpec{Months: 2},
		Quantity:   3,
	}, date(2024, time.March, 2))

	require.True(t, ok)
	assert.Equal(t, "near", best.Lot.ID)
}
