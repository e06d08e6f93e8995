package dto

import (
	"github.com/shopspring/decimal"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
)

// LineItemRequest is one product line as submitted by the PI form.
type LineItemRequest struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	HSCode      string          `json:"hs_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
}

// CreateInvoiceRequest body for POST /api/invoices.
// Charges amounts arrive as strings straight from the form; unparseable
// values count as zero, they are not rejected.
type CreateInvoiceRequest struct {
	PINumber     string               `json:"pi_number"`
	PartyID      string               `json:"party_id"`
	Status       string               `json:"status,omitempty"` // draft (default) or pending
	DeliveryTerm string               `json:"delivery_term"`
	PaymentTerm  string               `json:"payment_term"`
	Currency     string               `json:"currency,omitempty"` // default USD
	Items        []LineItemRequest    `json:"items"`
	Charges      entity.ChargesConfig `json:"charges"`
	Notes        string               `json:"notes,omitempty"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id. Same shape as create
// minus the status; edits are only legal pre-confirmation.
type UpdateInvoiceRequest struct {
	PINumber     string               `json:"pi_number"`
	PartyID      string               `json:"party_id"`
	DeliveryTerm string               `json:"delivery_term"`
	PaymentTerm  string               `json:"payment_term"`
	Currency     string               `json:"currency,omitempty"`
	Items        []LineItemRequest    `json:"items"`
	Charges      entity.ChargesConfig `json:"charges"`
	Notes        string               `json:"notes,omitempty"`
}

// ConfirmOrderRequest body for POST /api/invoices/:id/confirm.
// PaymentAmount is required and must be positive when PaymentReceived is set.
type ConfirmOrderRequest struct {
	PaymentReceived bool            `json:"payment_received"`
	PaymentAmount   decimal.Decimal `json:"payment_amount,omitempty"`
}

// SendEmailRequest body for POST /api/invoices/:id/email.
type SendEmailRequest struct {
	Email string `json:"email"`
}

// LineItemResponse is one invoice line in responses.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	HSCode      string          `json:"hs_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse is a proforma invoice with derived totals, for detail and
// mutation responses. Items is omitted on list responses.
type InvoiceResponse struct {
	ID            string               `json:"id"`
	PINumber      string               `json:"pi_number"`
	PartyID       string               `json:"party_id"`
	PartyName     string               `json:"party_name,omitempty"`
	Status        string               `json:"status"`
	DeliveryTerm  string               `json:"delivery_term"`
	PaymentTerm   string               `json:"payment_term"`
	Currency      string               `json:"currency"`
	Charges       entity.ChargesConfig `json:"charges"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	ChargesTotal  decimal.Decimal      `json:"charges_total"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	AdvanceAmount decimal.Decimal      `json:"advance_amount"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     string               `json:"created_at"`
	Items         []LineItemResponse   `json:"items,omitempty"`
}
