package models

import "github.com/shopspring/decimal"

// Product is a flat-rate catalog item sold alongside animals (feed bags,
// crates, ...). Products are priced unit × quantity with no age involved.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
}

// ProductLine is a requested quantity of one catalog product inside an order.
type ProductLine struct {
	Product  Product
	Quantity int
}
