package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/invoice"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

// InvoiceUseCase covers the CRUD side of proforma invoices: create and edit
// (both recompute the derived totals), fetch, list and delete. The confirm
// transition lives in ConfirmOrderUseCase.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.ProformaInvoiceRepository
	partyRepo   repository.PartyRepository
	productRepo repository.ProductRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.ProformaInvoiceRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		partyRepo:   partyRepo,
		productRepo: productRepo,
	}
}

// Create validates the form input, computes subtotal/charges/total and
// persists the invoice header plus its items in one transaction.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	status := entity.InvoiceStatus(in.Status)
	if in.Status == "" {
		status = entity.StatusDraft
	}
	if !status.Mutable() {
		// Invoices are born pre-confirmation; draft and pending only.
		return nil, domain.ErrInvalidInput
	}
	if in.PINumber == "" || in.PartyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	term := entity.DeliveryTerm(in.DeliveryTerm)
	payTerm := entity.PaymentTerm(in.PaymentTerm)
	if !term.Valid() || !payTerm.Valid() {
		return nil, domain.ErrInvalidInput
	}

	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil || party == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	totals := invoice.ComputeTotals(derefItems(items), term, in.Charges)
	inv := &entity.ProformaInvoice{
		ID:            uuid.New().String(),
		PINumber:      in.PINumber,
		PartyID:       in.PartyID,
		Status:        status,
		DeliveryTerm:  term,
		PaymentTerm:   payTerm,
		Currency:      currency,
		Charges:       in.Charges,
		Subtotal:      totals.Subtotal,
		ChargesTotal:  totals.ChargesTotal,
		TotalAmount:   totals.TotalAmount,
		AdvanceAmount: decimal.Zero,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range items {
		item.InvoiceID = inv.ID
	}

	err = uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.ProformaInvoiceRepository,
		_ repository.PartyRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponse(inv, party.Name, items), nil
}

// Get returns the full invoice with items and the buyer's name.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	partyName := ""
	if party, _ := uc.partyRepo.GetByID(inv.PartyID); party != nil {
		partyName = party.Name
	}
	return toResponse(inv, partyName, items), nil
}

// List returns invoices matching the filter, without items.
func (uc *InvoiceUseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.InvoiceResponse, error) {
	if status != "" && !entity.InvoiceStatus(status).Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(repository.InvoiceFilter{
		Status: entity.InvoiceStatus(status),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toResponse(inv, "", nil))
	}
	return out, nil
}

// Update edits a pre-confirmation invoice and recomputes its totals. Editing
// a confirmed or cancelled invoice is a conflict; the recorded advance is
// left untouched.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !inv.Status.Mutable() {
		return nil, domain.ErrConflict
	}
	if in.PINumber == "" || in.PartyID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	term := entity.DeliveryTerm(in.DeliveryTerm)
	payTerm := entity.PaymentTerm(in.PaymentTerm)
	if !term.Valid() || !payTerm.Valid() {
		return nil, domain.ErrInvalidInput
	}
	party, err := uc.partyRepo.GetByID(in.PartyID)
	if err != nil || party == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.InvoiceID = inv.ID
	}

	totals := invoice.ComputeTotals(derefItems(items), term, in.Charges)
	inv.PINumber = in.PINumber
	inv.PartyID = in.PartyID
	inv.DeliveryTerm = term
	inv.PaymentTerm = payTerm
	if in.Currency != "" {
		inv.Currency = in.Currency
	}
	inv.Charges = in.Charges
	inv.Subtotal = totals.Subtotal
	inv.ChargesTotal = totals.ChargesTotal
	inv.TotalAmount = totals.TotalAmount
	inv.Notes = in.Notes
	inv.UpdatedAt = time.Now()

	err = uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.ProformaInvoiceRepository,
		_ repository.PartyRepository,
	) error {
		if err := invoiceRepo.Update(inv); err != nil {
			return err
		}
		return invoiceRepo.ReplaceItems(inv.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(inv, party.Name, items), nil
}

// Delete removes an invoice. Explicit action, legal from any status,
// independent of the state machine.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	return uc.invoiceRepo.Delete(id)
}

// buildItems validates the line inputs and derives each line total. Lines
// referencing a product inherit its name, HS code, unit and rate where the
// form left them blank.
func (uc *InvoiceUseCase) buildItems(in []dto.LineItemRequest) ([]*entity.LineItem, error) {
	items := make([]*entity.LineItem, 0, len(in))
	for i := range in {
		line := in[i]
		if !line.Quantity.IsPositive() || line.Rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if line.ProductID != "" {
			product, err := uc.productRepo.GetByID(line.ProductID)
			if err != nil || product == nil {
				return nil, domain.ErrNotFound
			}
			if line.Name == "" {
				line.Name = product.Name
			}
			if line.HSCode == "" {
				line.HSCode = product.HSCode
			}
			if line.Unit == "" {
				line.Unit = product.Unit
			}
			if line.Rate.IsZero() {
				line.Rate = product.Rate
			}
		}
		if line.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item := &entity.LineItem{
			ID:          uuid.New().String(),
			ProductID:   line.ProductID,
			Name:        line.Name,
			HSCode:      line.HSCode,
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			Rate:        line.Rate,
		}
		item.Total = invoice.ItemTotal(*item)
		items = append(items, item)
	}
	return items, nil
}

func derefItems(items []*entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out
}

func toResponse(inv *entity.ProformaInvoice, partyName string, items []*entity.LineItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		PINumber:      inv.PINumber,
		PartyID:       inv.PartyID,
		PartyName:     partyName,
		Status:        string(inv.Status),
		DeliveryTerm:  string(inv.DeliveryTerm),
		PaymentTerm:   string(inv.PaymentTerm),
		Currency:      inv.Currency,
		Charges:       inv.Charges,
		Subtotal:      inv.Subtotal,
		ChargesTotal:  inv.ChargesTotal,
		TotalAmount:   inv.TotalAmount,
		AdvanceAmount: inv.AdvanceAmount,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt.Format("2006-01-02"),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Name:        item.Name,
			HSCode:      item.HSCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			Rate:        item.Rate,
			Total:       item.Total,
		})
	}
	return resp
}
