package invoicing

import (
	"context"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

// InvoiceTxRunner runs a function with invoice and party repositories bound
// to a single transaction. Used by create/update so the header and its items
// persist atomically.
type InvoiceTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		invoiceRepo repository.ProformaInvoiceRepository,
		partyRepo repository.PartyRepository,
	) error) error
}

// CompanyInfo is the exporter's own letterhead data, sourced from config.
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// InvoicePDFGenerator renders the printable proforma invoice document.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		inv *entity.ProformaInvoice,
		buyer *entity.Party,
		items []*entity.LineItem,
		seller CompanyInfo,
	) ([]byte, error)
}

// OutgoingMail is a single message with an optional attachment.
type OutgoingMail struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// EmailSender dispatches mail. Failures are reported to the caller and never
// affect invoice state.
type EmailSender interface {
	Send(ctx context.Context, msg OutgoingMail) error
}
