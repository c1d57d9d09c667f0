package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
	"github.com/Real-Lux/Farm-App-sub001/internal/repository/mongodb"
)

type fakeRepo struct {
	mongodb.Repository

	lots   []models.Lot
	tables map[string]models.PricingTable
}

func (f *fakeRepo) ListLots(_ context.Context, speciesFilter string) ([]models.Lot, error) {
	if speciesFilter == "" {
		return f.lots, nil
	}
	var filtered []models.Lot
	for _, lot := range f.lots {
		if lot.SpeciesKey == speciesFilter {
			filtered = append(filtered, lot)
		}
	}
	return filtered, nil
}

func (f *fakeRepo) ListPricingTables(_ context.Context) (map[string]models.PricingTable, error) {
	return f.tables, nil
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRepo() *fakeRepo {
	return &fakeRepo{
		lots: []models.Lot{
			{
				ID:            "lot-jan",
				SpeciesKey:    "chicken",
				ReferenceDate: utcDate(2024, time.January, 1),
				Active:        true,
				RaceAllocations: map[string]models.RaceAllocation{
					"Leghorn": {Males: 5, Females: 5},
				},
			},
			{
				ID:            "lot-inactive",
				SpeciesKey:    "chicken",
				ReferenceDate: utcDate(2024, time.January, 1),
				Active:        false,
				RaceAllocations: map[string]models.RaceAllocation{
					"Leghorn": {Males: 4, Females: 4},
				},
			},
			{
				ID:            "lot-goose",
				SpeciesKey:    "goose",
				ReferenceDate: utcDate(2024, time.February, 10),
				Active:        true,
				RaceAllocations: map[string]models.RaceAllocation{
					"Toulouse": {Males: 1, Females: 2},
				},
			},
		},
		tables: map[string]models.PricingTable{
			"chicken": {
				SpeciesKey: "chicken",
				Entries: []models.PricingEntry{
					{AgeMonths: 2, Sex: models.SexAny, Price: decimal.NewFromInt(9)},
				},
			},
		},
	}
}

func testService(repo *fakeRepo, now time.Time) *Service {
	svc := NewService(repo, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestSuggestLots(t *testing.T) {
	svc := testService(testRepo(), utcDate(2024, time.February, 1))

	delivery := utcDate(2024, time.March, 2)
	suggestions, err := svc.SuggestLots(context.Background(), SuggestionQuery{
		Race:         "Leghorn",
		DesiredAge:   models.AgeSpec{Months: 2},
		Quantity:     3,
		DeliveryDate: &delivery,
	})
	require.NoError(t, err)

	// The inactive lot is filtered out by the index.
	require.Len(t, suggestions, 1)
	assert.Equal(t, "lot-jan", suggestions[0].Lot.ID)
	assert.True(t, suggestions[0].Optimal)
	assert.Equal(t, 7, suggestions[0].RemainingAfterOrder)
	require.True(t, suggestions[0].Priced)
	assert.True(t, decimal.NewFromInt(9).Equal(suggestions[0].UnitPrice))
}

func TestSuggestLotsRejectsBadSex(t *testing.T) {
	svc := testService(testRepo(), utcDate(2024, time.February, 1))

	_, err := svc.SuggestLots(context.Background(), SuggestionQuery{
		Race: "Leghorn", Quantity: 1, Sex: "hen",
	})
	assert.Error(t, err)
}

func TestSuggestLotsNoCandidates(t *testing.T) {
	svc := testService(testRepo(), utcDate(2024, time.February, 1))

	suggestions, err := svc.SuggestLots(context.Background(), SuggestionQuery{
		Race: "Orpington", DesiredAge: models.AgeSpec{Months: 1}, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestListAvailableLots(t *testing.T) {
	svc := testService(testRepo(), utcDate(2024, time.February, 1))

	lots, err := svc.ListAvailableLots(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, lots, 2)

	lots, err = svc.ListAvailableLots(context.Background(), "chicken", "Leghorn")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "lot-jan", lots[0].ID)

	lots, err = svc.ListAvailableLots(context.Background(), "goose", "Leghorn")
	require.NoError(t, err)
	assert.Empty(t, lots)
}
