package mongodb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

func TestOrderDocRoundTrip(t *testing.T) {
	lot := models.Lot{ID: "lot-jan", SpeciesKey: "chicken"}
	collection := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)

	line := models.SelectionLine{
		SpeciesKey:    "chicken",
		Race:          "Leghorn",
		SexPreference: models.SexFemale,
		Quantity:      4,
		DesiredAge:    models.AgeSpec{Months: 2},
		BoundLot:      &lot,
	}
	record := models.OrderRecord{
		ID:         "order-1",
		Client:     "Dupont",
		Selections: []models.SelectionLine{line},
		Breakdown: models.OrderPriceBreakdown{
			Lines: []models.PricedLine{{
				Line:      line,
				UnitPrice: decimal.NewFromInt(9),
				LineTotal: decimal.NewFromInt(36),
			}},
			GrandTotal:            decimal.NewFromFloat(61.5),
			MissingPricingSpecies: []string{"goose"},
		},
		SuggestedCollectionDate: &collection,
		CreatedAt:               time.Date(2024, time.February, 1, 10, 30, 0, 0, time.UTC),
	}

	doc := orderDocFromModel(record)
	assert.Equal(t, "61.5", doc.GrandTotal)
	require.Len(t, doc.Selections, 1)
	assert.Equal(t, "lot-jan", doc.Selections[0].LotID)

	back, err := doc.toModel()
	require.NoError(t, err)

	assert.Equal(t, record.ID, back.ID)
	assert.Equal(t, record.Client, back.Client)
	assert.True(t, record.Breakdown.GrandTotal.Equal(back.Breakdown.GrandTotal))
	assert.Equal(t, record.Breakdown.MissingPricingSpecies, back.Breakdown.MissingPricingSpecies)
	require.Len(t, back.Selections, 1)
	assert.Equal(t, models.SexFemale, back.Selections[0].SexPreference)
	require.NotNil(t, back.Selections[0].BoundLot)
	assert.Equal(t, "lot-jan", back.Selections[0].BoundLot.ID)
	require.NotNil(t, back.SuggestedCollectionDate)
	assert.True(t, collection.Equal(*back.SuggestedCollectionDate))

	require.Len(t, back.Breakdown.Lines, 1)
	assert.True(t, decimal.NewFromInt(9).Equal(back.Breakdown.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(36).Equal(back.Breakdown.Lines[0].LineTotal))
}

func TestParsePrice(t *testing.T) {
	value, err := parsePrice("12.50")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(12.5).Equal(value))

	value, err = parsePrice("")
	require.NoError(t, err)
	assert.True(t, decimal.Zero.Equal(value))

	_, err = parsePrice("not-a-price")
	assert.Error(t, err)
}
