package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	HSCode      string          `json:"hs_code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
}

// UpdateProductRequest body for PUT /api/products/:id. Nil fields are left
// unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	HSCode      *string          `json:"hs_code"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	Rate        *decimal.Decimal `json:"rate"`
}

// ProductResponse is a product in responses.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	HSCode      string          `json:"hs_code"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
