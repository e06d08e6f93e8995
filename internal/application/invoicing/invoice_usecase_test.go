package invoicing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/application/invoicing"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

type mockPartyRepo struct {
	parties map[string]*entity.Party
}

var _ repository.PartyRepository = (*mockPartyRepo)(nil)

func (m *mockPartyRepo) Create(p *entity.Party) error { return nil }
func (m *mockPartyRepo) GetByID(id string) (*entity.Party, error) {
	return m.parties[id], nil
}
func (m *mockPartyRepo) GetByTaxID(taxID string) (*entity.Party, error) { return nil, nil }
func (m *mockPartyRepo) List(t entity.PartyType, limit, offset int) ([]*entity.Party, error) {
	return nil, nil
}
func (m *mockPartyRepo) Update(p *entity.Party) error { return nil }
func (m *mockPartyRepo) Delete(id string) error       { return nil }

type mockProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*mockProductRepo)(nil)

func (m *mockProductRepo) Create(p *entity.Product) error { return nil }
func (m *mockProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.products[id], nil
}
func (m *mockProductRepo) GetByHSCode(hs string) ([]*entity.Product, error) { return nil, nil }
func (m *mockProductRepo) Update(p *entity.Product) error                   { return nil }
func (m *mockProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) Delete(id string) error { return nil }

// mockTxRunner hands the callback the same repos the use case already holds;
// transactionality itself is the postgres runner's concern.
type mockTxRunner struct {
	invoiceRepo repository.ProformaInvoiceRepository
	partyRepo   repository.PartyRepository
}

func (m *mockTxRunner) RunInvoicing(ctx context.Context, fn func(
	repository.ProformaInvoiceRepository,
	repository.PartyRepository,
) error) error {
	return fn(m.invoiceRepo, m.partyRepo)
}

func buildInvoiceUseCase(invRepo *mockInvoiceRepo) *invoicing.InvoiceUseCase {
	parties := &mockPartyRepo{parties: map[string]*entity.Party{
		"party-1": {ID: "party-1", Name: "Oceanic Traders", Type: entity.PartyCustomer},
	}}
	products := &mockProductRepo{products: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Steel Bolts", HSCode: "7318.15", Unit: "pcs", Rate: decimal.NewFromInt(25)},
	}}
	return invoicing.NewInvoiceUseCase(
		&mockTxRunner{invoiceRepo: invRepo, partyRepo: parties},
		invRepo, parties, products,
	)
}

func TestCreateInvoice_ComputesTotalsFromItemsAndCharges(t *testing.T) {
	repo := &mockInvoiceRepo{}
	uc := buildInvoiceUseCase(repo)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		PINumber:     "PI-2024-007",
		PartyID:      "party-1",
		DeliveryTerm: "cif",
		PaymentTerm:  "advance",
		Items: []dto.LineItemRequest{
			{Name: "Steel Bolts", Quantity: decimal.NewFromInt(10), Unit: "pcs", Rate: decimal.NewFromInt(25)},
			{Name: "Copper Wire", Quantity: decimal.NewFromInt(5), Unit: "kg", Rate: decimal.NewFromInt(40)},
		},
		Charges: entity.ChargesConfig{FreightCharge: "50", DutyPercent: "10"},
	})

	require.NoError(t, err)
	assert.Equal(t, "draft", resp.Status, "default status is draft")
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, decimal.NewFromInt(450).Equal(resp.Subtotal))
	assert.True(t, decimal.NewFromInt(95).Equal(resp.ChargesTotal))
	assert.True(t, decimal.NewFromInt(545).Equal(resp.TotalAmount))
	assert.True(t, resp.AdvanceAmount.IsZero())
	assert.Equal(t, "Oceanic Traders", resp.PartyName)
	assert.Contains(t, repo.calls, "create")
	assert.Contains(t, repo.calls, "create_item")
}

func TestCreateInvoice_LineInheritsProductDefaults(t *testing.T) {
	repo := &mockInvoiceRepo{}
	uc := buildInvoiceUseCase(repo)

	resp, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		PINumber:     "PI-2024-008",
		PartyID:      "party-1",
		DeliveryTerm: "fob",
		PaymentTerm:  "lc",
		Items: []dto.LineItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(100)},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Steel Bolts", resp.Items[0].Name)
	assert.Equal(t, "7318.15", resp.Items[0].HSCode)
	assert.Equal(t, "pcs", resp.Items[0].Unit)
	assert.True(t, decimal.NewFromInt(2500).Equal(resp.Items[0].Total), "100 x default rate 25")
}

func TestCreateInvoice_ValidationFailures(t *testing.T) {
	uc := buildInvoiceUseCase(&mockInvoiceRepo{})
	ctx := context.Background()

	validItems := []dto.LineItemRequest{
		{Name: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)},
	}

	cases := []struct {
		name string
		in   dto.CreateInvoiceRequest
		want error
	}{
		{"missing pi number", dto.CreateInvoiceRequest{PartyID: "party-1", DeliveryTerm: "cif", PaymentTerm: "lc", Items: validItems}, domain.ErrInvalidInput},
		{"missing items", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "party-1", DeliveryTerm: "cif", PaymentTerm: "lc"}, domain.ErrInvalidInput},
		{"bad delivery term", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "party-1", DeliveryTerm: "exw", PaymentTerm: "lc", Items: validItems}, domain.ErrInvalidInput},
		{"confirmed at create", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "party-1", Status: "confirmed", DeliveryTerm: "cif", PaymentTerm: "lc", Items: validItems}, domain.ErrInvalidInput},
		{"unknown party", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "nobody", DeliveryTerm: "cif", PaymentTerm: "lc", Items: validItems}, domain.ErrNotFound},
		{"zero quantity", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "party-1", DeliveryTerm: "cif", PaymentTerm: "lc",
			Items: []dto.LineItemRequest{{Name: "Widget", Quantity: decimal.Zero, Rate: decimal.NewFromInt(10)}}}, domain.ErrInvalidInput},
		{"negative rate", dto.CreateInvoiceRequest{PINumber: "PI-1", PartyID: "party-1", DeliveryTerm: "cif", PaymentTerm: "lc",
			Items: []dto.LineItemRequest{{Name: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(-5)}}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateInvoice_RecomputesTotals(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	uc := buildInvoiceUseCase(repo)

	resp, err := uc.Update(context.Background(), "inv-1", dto.UpdateInvoiceRequest{
		PINumber:     "PI-2024-001",
		PartyID:      "party-1",
		DeliveryTerm: "fob",
		PaymentTerm:  "advance",
		Items: []dto.LineItemRequest{
			{Name: "Steel Bolts", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(25)},
		},
		Charges: entity.ChargesConfig{FreightCharge: "999", NoOtherCharges: true},
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(250).Equal(resp.Subtotal))
	assert.True(t, resp.ChargesTotal.IsZero(), "fob + noOtherCharges suppresses the freight")
	assert.True(t, decimal.NewFromInt(250).Equal(resp.TotalAmount))
	assert.Contains(t, repo.calls, "replace_items")
}

func TestUpdateInvoice_ConfirmedInvoiceIsImmutable(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	repo.invoice.Status = entity.StatusConfirmed
	uc := buildInvoiceUseCase(repo)

	_, err := uc.Update(context.Background(), "inv-1", dto.UpdateInvoiceRequest{
		PINumber:     "PI-2024-001",
		PartyID:      "party-1",
		DeliveryTerm: "cif",
		PaymentTerm:  "lc",
		Items: []dto.LineItemRequest{
			{Name: "Widget", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)},
		},
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteInvoice_AllowedFromConfirmed(t *testing.T) {
	repo := &mockInvoiceRepo{invoice: pendingInvoice(545)}
	repo.invoice.Status = entity.StatusConfirmed
	uc := buildInvoiceUseCase(repo)

	err := uc.Delete(context.Background(), "inv-1")

	require.NoError(t, err)
	assert.Contains(t, repo.calls, "delete", "delete bypasses the state machine")
}
