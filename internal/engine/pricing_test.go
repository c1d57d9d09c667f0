package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func leghornTable() models.PricingTable {
	return models.PricingTable{
		SpeciesKey: "chicken",
		Entries: []models.PricingEntry{
			{AgeMonths: 1, Sex: models.SexFemale, Price: price(10)},
			{AgeMonths: 3, Sex: models.SexFemale, Price: price(20)},
			{AgeMonths: 2, Sex: models.SexMale, Price: price(8)},
			{AgeMonths: 2, Sex: models.SexAny, Price: price(9)},
		},
	}
}

func TestPriceForNearestAge(t *testing.T) {
	table := leghornTable()

	got, ok := PriceFor(table, 2.8, models.SexFemale)
	require.True(t, ok)
	assert.True(t, price(20).Equal(got))

	got, ok = PriceFor(table, 0.2, models.SexFemale)
	require.True(t, ok)
	assert.True(t, price(10).Equal(got))
}

func TestPriceForTieBreak(t *testing.T) {
	// Two female entries equidistant from age 2.0: the first entry in table
	// order wins. This tie-break is a documented contract.
	table := models.PricingTable{
		SpeciesKey: "chicken",
		Entries: []models.PricingEntry{
			{AgeMonths: 1, Sex: models.SexFemale, Price: price(10)},
			{AgeMonths: 3, Sex: models.SexFemale, Price: price(20)},
		},
	}

	got, ok := PriceFor(table, 2.0, models.SexFemale)
	require.True(t, ok)
	assert.True(t, price(10).Equal(got), "equidistant match must resolve to the first entry")
}

func TestPriceForSexMatching(t *testing.T) {
	table := leghornTable()

	// Sex-specific requests may match SexAny entries.
	got, ok := PriceFor(table, 2.0, models.SexMale)
	require.True(t, ok)
	assert.True(t, price(8).Equal(got), "male entry precedes the any entry at the same distance")

	// SexAny requests match SexAny entries only, never sex-specific ones.
	got, ok = PriceFor(table, 2.0, models.SexAny)
	require.True(t, ok)
	assert.True(t, price(9).Equal(got))

	onlyFemale := models.PricingTable{
		SpeciesKey: "chicken",
		Entries:    []models.PricingEntry{{AgeMonths: 1, Sex: models.SexFemale, Price: price(10)}},
	}
	_, ok = PriceFor(onlyFemale, 1.0, models.SexAny)
	assert.False(t, ok, "any-sex request must not fall back to sex-specific entries")

	_, ok = PriceFor(onlyFemale, 1.0, models.SexMale)
	assert.False(t, ok, "no male or any entry means no match")
}

func TestPriceForEmptyTable(t *testing.T) {
	_, ok := PriceFor(models.PricingTable{SpeciesKey: "goose"}, 1.0, models.SexFemale)
	assert.False(t, ok)
}
