package invoicing

import (
	"context"
	"fmt"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/invoice"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
	"github.com/exim-suite/tradeflow-api/pkg/logger"
)

// ConfirmOrderUseCase drives the one-way lifecycle transitions of a proforma
// invoice: confirm (with optional payment settlement) and cancel.
//
// Confirm writes in a fixed order: amounts first, status second. An amounts
// failure aborts before the status write and leaves the invoice untouched; a
// status failure after the amounts write surfaces as a
// domain.PartialApplicationError so operators can find and reconcile the
// half-applied invoice. The two writes are deliberately not wrapped in one
// transaction: they mirror the two sequential gateway calls of the original
// flow, and the distinguishable failure modes are part of the contract.
type ConfirmOrderUseCase struct {
	invoiceRepo repository.ProformaInvoiceRepository
	log         *logger.Logger
}

// NewConfirmOrderUseCase builds the use case.
func NewConfirmOrderUseCase(invoiceRepo repository.ProformaInvoiceRepository, log *logger.Logger) *ConfirmOrderUseCase {
	return &ConfirmOrderUseCase{invoiceRepo: invoiceRepo, log: log}
}

// Confirm transitions the invoice to confirmed. When a payment accompanies
// the confirmation, the residual total and advance are settled and persisted
// before the status transition.
func (uc *ConfirmOrderUseCase) Confirm(ctx context.Context, id string, in dto.ConfirmOrderRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("confirm: load invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.StatusConfirmed {
		// The UI hides the action once confirmed; API callers still hit this.
		return nil, domain.ErrAlreadyConfirmed
	}
	if !inv.Status.CanTransitionTo(entity.StatusConfirmed) {
		return nil, domain.ErrConflict
	}
	if in.PaymentReceived && !in.PaymentAmount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	if in.PaymentReceived {
		settlement := invoice.ReconcilePayment(inv.TotalAmount, in.PaymentAmount)
		if settlement.TotalAmount.IsNegative() {
			uc.log.Warn().
				Str("invoice_id", inv.ID).
				Str("pi_number", inv.PINumber).
				Str("residual", settlement.TotalAmount.String()).
				Msg("payment exceeds invoice total, residual is negative")
		}
		if err := uc.invoiceRepo.UpdateAmounts(inv.ID, settlement.TotalAmount, settlement.AdvanceAmount); err != nil {
			// Status untouched; the confirm did not happen.
			return nil, fmt.Errorf("confirm: update amounts: %w", err)
		}
		inv.TotalAmount = settlement.TotalAmount
		inv.AdvanceAmount = settlement.AdvanceAmount
	}

	if err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.StatusConfirmed); err != nil {
		if in.PaymentReceived {
			uc.log.Error().
				Str("invoice_id", inv.ID).
				Err(err).
				Msg("status write failed after amounts were persisted")
			return nil, &domain.PartialApplicationError{InvoiceID: inv.ID, Err: err}
		}
		return nil, fmt.Errorf("confirm: update status: %w", err)
	}
	inv.Status = entity.StatusConfirmed

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("pi_number", inv.PINumber).
		Bool("payment_received", in.PaymentReceived).
		Msg("proforma invoice confirmed")

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(inv.ID)
	if err != nil {
		return nil, fmt.Errorf("confirm: load items: %w", err)
	}
	return toResponse(inv, "", items), nil
}

// Cancel transitions a pre-confirmation invoice to cancelled. Amounts are
// never touched on cancel.
func (uc *ConfirmOrderUseCase) Cancel(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("cancel: load invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !inv.Status.CanTransitionTo(entity.StatusCancelled) {
		return nil, domain.ErrConflict
	}
	if err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel: update status: %w", err)
	}
	inv.Status = entity.StatusCancelled

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("pi_number", inv.PINumber).
		Msg("proforma invoice cancelled")

	return toResponse(inv, "", nil), nil
}
