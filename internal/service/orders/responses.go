package orders

import (
	"time"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// QuoteLine is the API shape of one priced selection line. Prices travel as
// strings to keep decimal exactness on the wire.
type QuoteLine struct {
	SpeciesKey string         `json:"species_key"`
	Race       string         `json:"race"`
	Sex        string         `json:"sex"`
	Quantity   int            `json:"quantity"`
	DesiredAge models.AgeSpec `json:"desired_age"`
	LotID      string         `json:"lot_id,omitempty"`
	UnitPrice  string         `json:"unit_price"`
	LineTotal  string         `json:"line_total"`
}

// QuoteProductLine is the API shape of one priced catalog line.
type QuoteProductLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// QuoteResponse is the itemized pricing answer for a selection set.
type QuoteResponse struct {
	Lines                   []QuoteLine        `json:"lines"`
	Products                []QuoteProductLine `json:"products,omitempty"`
	GrandTotal              string             `json:"grand_total"`
	MissingPricingSpecies   []string           `json:"missing_pricing_species,omitempty"`
	UnmatchedRaces          []string           `json:"unmatched_races,omitempty"`
	SuggestedCollectionDate *time.Time         `json:"suggested_collection_date,omitempty"`
}

// OrderResponse extends the quote with the persisted order identity.
type OrderResponse struct {
	OrderID   string    `json:"order_id"`
	Client    string    `json:"client,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	QuoteResponse
}

func quoteResponse(result assembled) QuoteResponse {
	resp := QuoteResponse{
		Lines:                   make([]QuoteLine, 0, len(result.breakdown.Lines)),
		GrandTotal:              result.breakdown.GrandTotal.String(),
		MissingPricingSpecies:   result.breakdown.MissingPricingSpecies,
		UnmatchedRaces:          result.unmatchedRaces,
		SuggestedCollectionDate: result.collectionDate,
	}

	for _, priced := range result.breakdown.Lines {
		line := QuoteLine{
			SpeciesKey: priced.Line.SpeciesKey,
			Race:       priced.Line.Race,
			Sex:        string(priced.Line.SexPreference),
			Quantity:   priced.Line.Quantity,
			DesiredAge: priced.Line.DesiredAge,
			UnitPrice:  priced.UnitPrice.String(),
			LineTotal:  priced.LineTotal.String(),
		}
		if priced.Line.BoundLot != nil {
			line.LotID = priced.Line.BoundLot.ID
		}
		resp.Lines = append(resp.Lines, line)
	}

	for _, priced := range result.breakdown.ProductLines {
		resp.Products = append(resp.Products, QuoteProductLine{
			ProductID: priced.Product.ID,
			Name:      priced.Product.Name,
			Quantity:  priced.Quantity,
			UnitPrice: priced.Product.UnitPrice.String(),
			LineTotal: priced.LineTotal.String(),
		})
	}

	return resp
}

func orderResponse(record models.OrderRecord, result assembled) OrderResponse {
	return OrderResponse{
		OrderID:       record.ID,
		Client:        record.Client,
		CreatedAt:     record.CreatedAt,
		QuoteResponse: quoteResponse(result),
	}
}
