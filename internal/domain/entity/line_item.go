package entity

import "github.com/shopspring/decimal"

// LineItem is a product line on a proforma invoice. Total is always derived
// as Quantity * Rate; stored values are re-derived on every recomputation
// rather than trusted.
type LineItem struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Name        string
	HSCode      string
	Description string
	Quantity    decimal.Decimal
	Unit        string // "pcs", "kg", ...
	Rate        decimal.Decimal
	Total       decimal.Decimal
}
