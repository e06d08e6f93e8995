package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a tradeable good. Rate is the default per-unit price proposed
// when the product is added to an invoice line; the line may override it.
type Product struct {
	ID          string
	Name        string
	HSCode      string // harmonized system tariff code
	Description string
	Unit        string // "pcs", "kg", ...
	Rate        decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
