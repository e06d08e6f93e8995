package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/invoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeTotals — charge calculator
// ──────────────────────────────────────────────────────────────────────────────

func item(qty, rate int64) entity.LineItem {
	return entity.LineItem{
		Quantity: decimal.NewFromInt(qty),
		Rate:     decimal.NewFromInt(rate),
	}
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "expected %s, got %s: %v", expected, got, msgAndArgs)
}

func TestComputeTotals_SubtotalIsSumOfItems(t *testing.T) {
	items := []entity.LineItem{item(10, 25), item(5, 40), item(2, 3)}
	got := invoice.ComputeTotals(items, entity.TermCIF, entity.ChargesConfig{})

	assertDecimal(t, "456", got.Subtotal)
	assertDecimal(t, "0", got.ChargesTotal)
	assertDecimal(t, "456", got.TotalAmount)
}

func TestComputeTotals_SubtotalIndependentOfItemOrder(t *testing.T) {
	a := []entity.LineItem{item(10, 25), item(5, 40), item(7, 13)}
	b := []entity.LineItem{item(7, 13), item(10, 25), item(5, 40)}

	ta := invoice.ComputeTotals(a, entity.TermCIF, entity.ChargesConfig{})
	tb := invoice.ComputeTotals(b, entity.TermCIF, entity.ChargesConfig{})

	assert.True(t, ta.Subtotal.Equal(tb.Subtotal), "subtotal must not depend on item order")
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	got := invoice.ComputeTotals(nil, entity.TermCIF, entity.ChargesConfig{FreightCharge: "50"})

	assertDecimal(t, "0", got.Subtotal)
	assertDecimal(t, "50", got.ChargesTotal)
	assertDecimal(t, "50", got.TotalAmount)
}

// FOB with noOtherCharges suppresses every charge even when all fields are
// populated. Deliberate business rule, not a validation error.
func TestComputeTotals_FOBNoOtherChargesShortCircuit(t *testing.T) {
	charges := entity.ChargesConfig{
		FreightCharge:                 "100",
		Insurance:                     "50",
		DestinationPortHandlingCharge: "25",
		TransportationCharge:          "10",
		DutyPercent:                   "10",
		VatPercent:                    "19",
		OtherCharges:                  []entity.OtherCharge{{Name: "fumigation", Amount: "30"}},
		NoOtherCharges:                true,
	}
	got := invoice.ComputeTotals([]entity.LineItem{item(10, 100)}, entity.TermFOB, charges)

	assertDecimal(t, "1000", got.Subtotal)
	assertDecimal(t, "0", got.ChargesTotal, "fob + noOtherCharges must ignore all charges")
	assertDecimal(t, "1000", got.TotalAmount)
}

// The same flag means nothing outside FOB.
func TestComputeTotals_NoOtherChargesIgnoredForCIF(t *testing.T) {
	charges := entity.ChargesConfig{FreightCharge: "100", NoOtherCharges: true}
	got := invoice.ComputeTotals([]entity.LineItem{item(10, 100)}, entity.TermCIF, charges)

	assertDecimal(t, "100", got.ChargesTotal)
}

func TestComputeTotals_PercentAppliedToRawSubtotal(t *testing.T) {
	// dutyPercent 10 over a 1000 subtotal contributes exactly 100, no matter
	// what vatPercent is also set to: percentages never compound.
	charges := entity.ChargesConfig{DutyPercent: "10", VatPercent: "19"}
	got := invoice.ComputeTotals([]entity.LineItem{item(10, 100)}, entity.TermCIF, charges)

	assertDecimal(t, "1000", got.Subtotal)
	assertDecimal(t, "290", got.ChargesTotal, "10% + 19% of 1000, each off the raw subtotal")
}

func TestComputeTotals_ZeroSubtotalPercentContributesNothing(t *testing.T) {
	charges := entity.ChargesConfig{DutyPercent: "15"}
	got := invoice.ComputeTotals(nil, entity.TermCIF, charges)

	assertDecimal(t, "0", got.ChargesTotal, "percent over a zero subtotal must contribute 0")
	assertDecimal(t, "0", got.TotalAmount)
}

func TestComputeTotals_MalformedValuesContributeZero(t *testing.T) {
	charges := entity.ChargesConfig{
		FreightCharge:        "abc",
		Insurance:            "",
		TransportationCharge: "  ",
		DutyPercent:          "n/a",
		OtherCharges: []entity.OtherCharge{
			{Name: "handling", Amount: "12.5"},
			{Name: "typo", Amount: "12,5"},
			{Name: "blank", Amount: ""},
		},
	}
	got := invoice.ComputeTotals([]entity.LineItem{item(4, 25)}, entity.TermDDP, charges)

	assertDecimal(t, "12.5", got.ChargesTotal, "only the parseable other charge counts")
	assertDecimal(t, "112.5", got.TotalAmount)
}

func TestComputeTotals_OtherChargesAreSummed(t *testing.T) {
	charges := entity.ChargesConfig{
		OtherCharges: []entity.OtherCharge{
			{Name: "fumigation", Amount: "30"},
			{Name: "palletizing", Amount: "20.25"},
		},
	}
	got := invoice.ComputeTotals([]entity.LineItem{item(1, 100)}, entity.TermCIF, charges)

	assertDecimal(t, "50.25", got.ChargesTotal)
}

// End-to-end scenario from the PI screens: two lines, cif, freight + duty.
func TestComputeTotals_CIFFreightAndDuty(t *testing.T) {
	items := []entity.LineItem{item(10, 25), item(5, 40)}
	charges := entity.ChargesConfig{FreightCharge: "50", DutyPercent: "10"}

	got := invoice.ComputeTotals(items, entity.TermCIF, charges)

	assertDecimal(t, "450", got.Subtotal)
	assertDecimal(t, "95", got.ChargesTotal, "50 freight + 45 duty")
	assertDecimal(t, "545", got.TotalAmount)
}

func TestItemTotal_DerivedFromQuantityAndRate(t *testing.T) {
	li := entity.LineItem{
		Quantity: decimal.RequireFromString("2.5"),
		Rate:     decimal.RequireFromString("40.20"),
		// stored Total is stale on purpose; it must be re-derived
		Total: decimal.NewFromInt(999),
	}
	assertDecimal(t, "100.5", invoice.ItemTotal(li))
}
