package invoicing

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/pkg/logger"
)

// EmailUseCase sends the proforma invoice PDF to a recipient. Dispatch-only;
// a send failure is reported to the caller and leaves the invoice untouched.
type EmailUseCase struct {
	pdfUC  *PDFUseCase
	sender EmailSender
	log    *logger.Logger
}

// NewEmailUseCase builds the use case.
func NewEmailUseCase(pdfUC *PDFUseCase, sender EmailSender, log *logger.Logger) *EmailUseCase {
	return &EmailUseCase{pdfUC: pdfUC, sender: sender, log: log}
}

// SendInvoice renders the invoice PDF and mails it to the given address.
func (uc *EmailUseCase) SendInvoice(ctx context.Context, invoiceID string, in dto.SendEmailRequest) (*dto.MessageResponse, error) {
	if in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.ErrInvalidInput
	}

	pdfBytes, filename, err := uc.pdfUC.DownloadInvoicePDF(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	inv, err := uc.pdfUC.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}

	msg := OutgoingMail{
		To:             in.Email,
		Subject:        fmt.Sprintf("Proforma Invoice %s", inv.PINumber),
		Body:           fmt.Sprintf("Please find attached proforma invoice %s.", inv.PINumber),
		AttachmentName: filename,
		Attachment:     pdfBytes,
	}
	if err := uc.sender.Send(ctx, msg); err != nil {
		uc.log.Error().
			Str("invoice_id", invoiceID).
			Str("to", in.Email).
			Err(err).
			Msg("invoice email dispatch failed")
		return nil, fmt.Errorf("email: send: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("to", in.Email).
		Msg("invoice emailed")

	return &dto.MessageResponse{
		ID:      invoiceID,
		Message: fmt.Sprintf("invoice %s sent to %s", inv.PINumber, in.Email),
	}, nil
}
