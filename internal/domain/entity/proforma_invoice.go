package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of a proforma invoice.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusPending   InvoiceStatus = "pending"
	StatusConfirmed InvoiceStatus = "confirmed"
	StatusCancelled InvoiceStatus = "cancelled"
)

// invoiceTransitions is the legal transition table. Confirmed and cancelled
// are terminal: there is no path out of either.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft:   {StatusPending, StatusConfirmed, StatusCancelled},
	StatusPending: {StatusConfirmed, StatusCancelled},
}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s InvoiceStatus) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Mutable reports whether an invoice in this status may still be edited.
// Draft and pending are both pre-confirmation states with identical mutability.
func (s InvoiceStatus) Mutable() bool {
	return s == StatusDraft || s == StatusPending
}

// CanTransitionTo reports whether s -> to is a legal transition.
func (s InvoiceStatus) CanTransitionTo(to InvoiceStatus) bool {
	for _, allowed := range invoiceTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// DeliveryTerm is the Incoterm governing who bears shipping and insurance.
type DeliveryTerm string

const (
	TermFOB DeliveryTerm = "fob"
	TermCIF DeliveryTerm = "cif"
	TermDDP DeliveryTerm = "ddp"
)

// Valid reports whether t is a recognized delivery term.
func (t DeliveryTerm) Valid() bool {
	return t == TermFOB || t == TermCIF || t == TermDDP
}

// PaymentTerm describes how the buyer pays. Informational only.
type PaymentTerm string

const (
	PaymentAdvance PaymentTerm = "advance"
	PaymentLC      PaymentTerm = "lc"
	Payment30Days  PaymentTerm = "30days"
)

// Valid reports whether t is a recognized payment term.
func (t PaymentTerm) Valid() bool {
	return t == PaymentAdvance || t == PaymentLC || t == Payment30Days
}

// ProformaInvoice is the pre-shipment invoice quoted to a buyer before the
// order is confirmed. Subtotal, ChargesTotal and TotalAmount are derived from
// the line items and charges configuration and recomputed on every edit.
// AdvanceAmount is the portion of the total already received as payment.
type ProformaInvoice struct {
	ID            string
	PINumber      string // business-visible identifier, distinct from ID
	PartyID       string // buyer
	Status        InvoiceStatus
	DeliveryTerm  DeliveryTerm
	PaymentTerm   PaymentTerm
	Currency      string // ISO-like 3-letter code, default USD
	Charges       ChargesConfig
	Subtotal      decimal.Decimal
	ChargesTotal  decimal.Decimal
	TotalAmount   decimal.Decimal
	AdvanceAmount decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
