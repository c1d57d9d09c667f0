package mongodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// Order documents flatten the engine's breakdown into bson-friendly records.
// Monetary values are stored as strings; bound lots are stored by reference
// since the lots collection owns the cohort data.

type selectionLineDoc struct {
	SpeciesKey    string         `bson:"species_key"`
	Race          string         `bson:"race"`
	SexPreference string         `bson:"sex_preference"`
	Quantity      int            `bson:"quantity"`
	DesiredAge    models.AgeSpec `bson:"desired_age"`
	LotID         string         `bson:"lot_id,omitempty"`
}

type pricedLineDoc struct {
	Line      selectionLineDoc `bson:"line"`
	UnitPrice string           `bson:"unit_price"`
	LineTotal string           `bson:"line_total"`
}

type productLineDoc struct {
	ProductID string `bson:"product_id"`
	Name      string `bson:"name"`
	UnitPrice string `bson:"unit_price"`
	Quantity  int    `bson:"quantity"`
	LineTotal string `bson:"line_total,omitempty"`
}

type orderDoc struct {
	ID                      string             `bson:"_id"`
	Client                  string             `bson:"client"`
	Selections              []selectionLineDoc `bson:"selections"`
	Products                []productLineDoc   `bson:"products,omitempty"`
	PricedLines             []pricedLineDoc    `bson:"priced_lines"`
	PricedProducts          []productLineDoc   `bson:"priced_products,omitempty"`
	GrandTotal              string             `bson:"grand_total"`
	MissingPricingSpecies   []string           `bson:"missing_pricing_species,omitempty"`
	DeliveryDate            *time.Time         `bson:"delivery_date,omitempty"`
	SuggestedCollectionDate *time.Time         `bson:"suggested_collection_date,omitempty"`
	CreatedAt               time.Time          `bson:"created_at"`
}

func selectionDocFromModel(line models.SelectionLine) selectionLineDoc {
	doc := selectionLineDoc{
		SpeciesKey:    line.SpeciesKey,
		Race:          line.Race,
		SexPreference: string(line.SexPreference),
		Quantity:      line.Quantity,
		DesiredAge:    line.DesiredAge,
	}
	if line.BoundLot != nil {
		doc.LotID = line.BoundLot.ID
	}
	return doc
}

func (d selectionLineDoc) toModel() (models.SelectionLine, error) {
	sex, err := models.ParseSex(d.SexPreference)
	if err != nil {
		return models.SelectionLine{}, fmt.Errorf("selection line: %w", err)
	}
	line := models.SelectionLine{
		SpeciesKey:    d.SpeciesKey,
		Race:          d.Race,
		SexPreference: sex,
		Quantity:      d.Quantity,
		DesiredAge:    d.DesiredAge,
	}
	if d.LotID != "" {
		// Rehydrated lines keep only the lot reference; callers needing full
		// cohort data resolve it against the lot store.
		line.BoundLot = &models.Lot{ID: d.LotID}
	}
	return line, nil
}

func orderDocFromModel(record models.OrderRecord) orderDoc {
	doc := orderDoc{
		ID:                      record.ID,
		Client:                  record.Client,
		GrandTotal:              record.Breakdown.GrandTotal.String(),
		MissingPricingSpecies:   record.Breakdown.MissingPricingSpecies,
		DeliveryDate:            record.DeliveryDate,
		SuggestedCollectionDate: record.SuggestedCollectionDate,
		CreatedAt:               record.CreatedAt,
	}

	for _, line := range record.Selections {
		doc.Selections = append(doc.Selections, selectionDocFromModel(line))
	}
	for _, product := range record.Products {
		doc.Products = append(doc.Products, productLineDoc{
			ProductID: product.Product.ID,
			Name:      product.Product.Name,
			UnitPrice: product.Product.UnitPrice.String(),
			Quantity:  product.Quantity,
		})
	}
	for _, priced := range record.Breakdown.Lines {
		doc.PricedLines = append(doc.PricedLines, pricedLineDoc{
			Line:      selectionDocFromModel(priced.Line),
			UnitPrice: priced.UnitPrice.String(),
			LineTotal: priced.LineTotal.String(),
		})
	}
	for _, priced := range record.Breakdown.ProductLines {
		doc.PricedProducts = append(doc.PricedProducts, productLineDoc{
			ProductID: priced.Product.ID,
			Name:      priced.Product.Name,
			UnitPrice: priced.Product.UnitPrice.String(),
			Quantity:  priced.Quantity,
			LineTotal: priced.LineTotal.String(),
		})
	}
	return doc
}

func (d orderDoc) toModel() (models.OrderRecord, error) {
	record := models.OrderRecord{
		ID:                      d.ID,
		Client:                  d.Client,
		DeliveryDate:            d.DeliveryDate,
		SuggestedCollectionDate: d.SuggestedCollectionDate,
		CreatedAt:               d.CreatedAt,
	}

	for _, lineDoc := range d.Selections {
		line, err := lineDoc.toModel()
		if err != nil {
			return models.OrderRecord{}, err
		}
		record.Selections = append(record.Selections, line)
	}

	for _, pd := range d.Products {
		unitPrice, err := parsePrice(pd.UnitPrice)
		if err != nil {
			return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		record.Products = append(record.Products, models.ProductLine{
			Product:  models.Product{ID: pd.ProductID, Name: pd.Name, UnitPrice: unitPrice},
			Quantity: pd.Quantity,
		})
	}

	grandTotal, err := parsePrice(d.GrandTotal)
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
	}
	record.Breakdown.GrandTotal = grandTotal
	record.Breakdown.MissingPricingSpecies = d.MissingPricingSpecies

	for _, pricedDoc := range d.PricedLines {
		line, err := pricedDoc.Line.toModel()
		if err != nil {
			return models.OrderRecord{}, err
		}
		unitPrice, err := parsePrice(pricedDoc.UnitPrice)
		if err != nil {
			return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		lineTotal, err := parsePrice(pricedDoc.LineTotal)
		if err != nil {
			return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		record.Breakdown.Lines = append(record.Breakdown.Lines, models.PricedLine{
			Line:      line,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	for _, pricedDoc := range d.PricedProducts {
		unitPrice, err := parsePrice(pricedDoc.UnitPrice)
		if err != nil {
			return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		lineTotal, err := parsePrice(pricedDoc.LineTotal)
		if err != nil {
			return models.OrderRecord{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		record.Breakdown.ProductLines = append(record.Breakdown.ProductLines, models.PricedProductLine{
			Product:   models.Product{ID: pricedDoc.ProductID, Name: pricedDoc.Name, UnitPrice: unitPrice},
			Quantity:  pricedDoc.Quantity,
			LineTotal: lineTotal,
		})
	}

	return record, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return value, nil
}
