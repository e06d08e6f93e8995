// Package invoice holds the pure financial services of the proforma invoice
// lifecycle: charge computation and payment reconciliation. No I/O here;
// everything operates on snapshots and returns new values.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Totals is the derived financial summary of an invoice.
type Totals struct {
	Subtotal     decimal.Decimal
	ChargesTotal decimal.Decimal
	TotalAmount  decimal.Decimal
}

// ItemTotal derives the line total as Quantity * Rate. Stored totals are
// never trusted; callers re-derive on every recomputation.
func ItemTotal(item entity.LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.Rate)
}

// ComputeTotals reduces the line items and charges configuration into
// subtotal, charges total and grand total.
//
// Rules:
//   - Subtotal is the sum of Quantity*Rate over all items (zero when empty).
//   - FOB with NoOtherCharges suppresses every charge, regardless of what
//     else is populated. Business rule, not validation.
//   - DutyPercent and VatPercent apply against the raw products subtotal and
//     never compound on each other. With a zero subtotal a percentage
//     contributes nothing.
//   - Flat charges and other-charge entries are parsed tolerantly: malformed
//     values contribute zero. Screens submit partially filled forms and that
//     must not be an error.
func ComputeTotals(items []entity.LineItem, term entity.DeliveryTerm, charges entity.ChargesConfig) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(ItemTotal(item))
	}

	chargesTotal := decimal.Zero
	if term == entity.TermFOB && charges.NoOtherCharges {
		return Totals{Subtotal: subtotal, ChargesTotal: chargesTotal, TotalAmount: subtotal}
	}

	for _, flat := range []string{
		charges.FreightCharge,
		charges.Insurance,
		charges.DestinationPortHandlingCharge,
		charges.TransportationCharge,
	} {
		chargesTotal = chargesTotal.Add(parseAmount(flat))
	}

	if subtotal.IsPositive() {
		for _, pct := range []string{charges.DutyPercent, charges.VatPercent} {
			chargesTotal = chargesTotal.Add(parseAmount(pct).Div(oneHundred).Mul(subtotal))
		}
	}

	for _, other := range charges.OtherCharges {
		chargesTotal = chargesTotal.Add(parseAmount(other.Amount))
	}

	return Totals{
		Subtotal:     subtotal,
		ChargesTotal: chargesTotal,
		TotalAmount:  subtotal.Add(chargesTotal),
	}
}

// parseAmount converts a form value to a decimal, treating empty or
// unparseable input as zero.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
