package invoicing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/application/invoicing"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
	"github.com/exim-suite/tradeflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock gateway — records the order of writes so the tests can assert the
// amounts-before-status contract.
// ──────────────────────────────────────────────────────────────────────────────

type mockInvoiceRepo struct {
	invoice *entity.ProformaInvoice
	items   []*entity.LineItem

	calls          []string
	failAmounts    error
	failStatus     error
	amountsWritten *struct{ total, advance decimal.Decimal }
	statusWritten  entity.InvoiceStatus
}

var _ repository.ProformaInvoiceRepository = (*mockInvoiceRepo)(nil)

func (m *mockInvoiceRepo) Create(inv *entity.ProformaInvoice) error { m.record("create"); return nil }
func (m *mockInvoiceRepo) CreateItem(item *entity.LineItem) error   { m.record("create_item"); return nil }

func (m *mockInvoiceRepo) GetByID(id string) (*entity.ProformaInvoice, error) {
	m.record("get")
	if m.invoice == nil || m.invoice.ID != id {
		return nil, nil
	}
	cp := *m.invoice
	return &cp, nil
}

func (m *mockInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.LineItem, error) {
	m.record("get_items")
	return m.items, nil
}

func (m *mockInvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.ProformaInvoice, error) {
	m.record("list")
	return nil, nil
}

func (m *mockInvoiceRepo) Update(inv *entity.ProformaInvoice) error { m.record("update"); return nil }

func (m *mockInvoiceRepo) ReplaceItems(invoiceID string, items []*entity.LineItem) error {
	m.record("replace_items")
	return nil
}

func (m *mockInvoiceRepo) UpdateAmounts(id string, totalAmount, advanceAmount decimal.Decimal) error {
	m.record("update_amounts")
	if m.failAmounts != nil {
		return m.failAmounts
	}
	m.amountsWritten = &struct{ total, advance decimal.Decimal }{totalAmount, advanceAmount}
	m.invoice.TotalAmount = totalAmount
	m.invoice.AdvanceAmount = advanceAmount
	return nil
}

func (m *mockInvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	m.record("update_status")
	if m.failStatus != nil {
		return m.failStatus
	}
	m.statusWritten = status
	m.invoice.Status = status
	return nil
}

func (m *mockInvoiceRepo) Delete(id string) error { m.record("delete"); return nil }

func (m *mockInvoiceRepo) record(call string) { m.calls = append(m.calls, call) }

func (m *mockInvoiceRepo) countWrites() int {
	n := 0
	for _, c := range m.calls {
		if c == "update_amounts" || c == "update_status" {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func pendingInvoice(total int64) *entity.ProformaInvoice {
	return &entity.ProformaInvoice{
		ID:           "inv-1",
		PINumber:     "PI-2024-001",
		PartyID:      "party-1",
		Status:       entity.StatusPending,
		DeliveryTerm: entity.TermCIF,
		PaymentTerm:  entity.PaymentAdvance,
		Currency:     "USD",
		TotalAmount:  decimal.NewFromInt(total),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_AlreadyConfirmedRejectedWithoutWrites(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	repo.invoice.Status = entity.StatusConfirmed
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{})

	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	assert.Zero(t, repo.countWrites(), "no gateway writes on a rejected re-confirm")
}

func TestConfirm_CancelledInvoiceIsConflict(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	repo.invoice.Status = entity.StatusCancelled
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, repo.countWrites())
}

func TestConfirm_UnknownInvoice(t *testing.T) {
	repo := &mockInvoiceRepo{}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "missing", dto.ConfirmOrderRequest{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_PaymentFlaggedWithoutAmountIsInvalid(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{PaymentReceived: true})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{
		PaymentReceived: true,
		PaymentAmount:   decimal.NewFromInt(-20),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, repo.countWrites())
}

func TestConfirm_WithoutPaymentOnlyStatusIsWritten(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	resp, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{})

	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusConfirmed), resp.Status)
	assert.Nil(t, repo.amountsWritten, "totals must stay unchanged without a payment")
	assert.Equal(t, entity.StatusConfirmed, repo.statusWritten)
}

func TestConfirm_WithPaymentSettlesAmountsThenStatus(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	resp, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{
		PaymentReceived: true,
		PaymentAmount:   decimal.NewFromInt(200),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.amountsWritten)
	assert.True(t, decimal.NewFromInt(345).Equal(repo.amountsWritten.total))
	assert.True(t, decimal.NewFromInt(200).Equal(repo.amountsWritten.advance))
	assert.Equal(t, entity.StatusConfirmed, repo.statusWritten)
	assert.True(t, decimal.NewFromInt(345).Equal(resp.TotalAmount))
	assert.True(t, decimal.NewFromInt(200).Equal(resp.AdvanceAmount))

	// amounts strictly before status
	var writes []string
	for _, c := range repo.calls {
		if c == "update_amounts" || c == "update_status" {
			writes = append(writes, c)
		}
	}
	assert.Equal(t, []string{"update_amounts", "update_status"}, writes)
}

func TestConfirm_AmountsFailureStopsBeforeStatusWrite(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545), failAmounts: errors.New("network down")}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{
		PaymentReceived: true,
		PaymentAmount:   decimal.NewFromInt(200),
	})

	require.Error(t, err)
	var pae *domain.PartialApplicationError
	assert.False(t, errors.As(err, &pae), "amounts failure is not a partial application")
	assert.NotContains(t, repo.calls, "update_status", "status must never be written after an amounts failure")
}

func TestConfirm_StatusFailureAfterAmountsIsPartialApplication(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545), failStatus: errors.New("write timeout")}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{
		PaymentReceived: true,
		PaymentAmount:   decimal.NewFromInt(200),
	})

	var pae *domain.PartialApplicationError
	require.ErrorAs(t, err, &pae)
	assert.Equal(t, "inv-1", pae.InvoiceID)
	assert.NotEmpty(t, pae.Error(), "partial application must carry renderable text")
	require.NotNil(t, repo.amountsWritten, "amounts were already persisted when status failed")
}

func TestConfirm_OverpaymentResidualGoesNegative(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(100)}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	resp, err := uc.Confirm(context.Background(), "inv-1", dto.ConfirmOrderRequest{
		PaymentReceived: true,
		PaymentAmount:   decimal.NewFromInt(150),
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-50).Equal(resp.TotalAmount))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_FromPending(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	resp, err := uc.Cancel(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelled), resp.Status)
	assert.Nil(t, repo.amountsWritten, "cancel never touches amounts")
}

func TestCancel_ConfirmedInvoiceIsConflict(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	repo.invoice.Status = entity.StatusConfirmed
	uc := invoicing.NewConfirmOrderUseCase(repo, quietLogger())

	_, err := uc.Cancel(context.Background(), "inv-1")

	assert.ErrorIs(t, err, domain.ErrConflict)
}
