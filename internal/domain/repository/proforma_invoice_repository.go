package repository

import (
	"github.com/shopspring/decimal"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
)

// InvoiceFilter narrows List results.
type InvoiceFilter struct {
	Status  entity.InvoiceStatus // empty = all
	PartyID string               // empty = all
	Limit   int
	Offset  int
}

// ProformaInvoiceRepository is the persistence port for proforma invoices.
//
// UpdateAmounts and UpdateStatus are deliberately separate partial updates:
// the confirm-order flow persists amounts first and the status transition
// second, and needs to observe each write's outcome independently.
type ProformaInvoiceRepository interface {
	Create(inv *entity.ProformaInvoice) error
	CreateItem(item *entity.LineItem) error
	GetByID(id string) (*entity.ProformaInvoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.LineItem, error)
	List(filter InvoiceFilter) ([]*entity.ProformaInvoice, error)
	// Update rewrites the editable fields (party, terms, charges, derived
	// totals, notes). Status and advance are not touched here.
	Update(inv *entity.ProformaInvoice) error
	// ReplaceItems swaps the full item set of an invoice.
	ReplaceItems(invoiceID string, items []*entity.LineItem) error
	// UpdateAmounts is a partial update of total_amount and advance_amount.
	// It must not alter status.
	UpdateAmounts(id string, totalAmount, advanceAmount decimal.Decimal) error
	UpdateStatus(id string, status entity.InvoiceStatus) error
	Delete(id string) error
}
