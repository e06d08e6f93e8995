package invoicing

import (
	"context"
	"fmt"

	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

// PDFUseCase renders the printable proforma invoice. Dispatch-only: it never
// touches invoice state, whatever the status.
type PDFUseCase struct {
	invoiceRepo repository.ProformaInvoiceRepository
	partyRepo   repository.PartyRepository
	generator   InvoicePDFGenerator
	company     CompanyInfo
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.ProformaInvoiceRepository,
	partyRepo repository.PartyRepository,
	generator InvoicePDFGenerator,
	company CompanyInfo,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		generator:   generator,
		company:     company,
	}
}

// DownloadInvoicePDF loads the invoice with its lines and buyer and renders
// the document.
//
// Returns:
//   - (pdfBytes, filename, nil) on success.
//   - domain.ErrNotFound if the invoice or its buyer does not exist.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}

	buyer, err := uc.partyRepo.GetByID(inv.PartyID)
	if err != nil || buyer == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, buyer, items, uc.company)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render: %w", err)
	}
	return pdfBytes, fmt.Sprintf("proforma-invoice-%s.pdf", inv.PINumber), nil
}
