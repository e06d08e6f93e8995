package invoice

import "github.com/shopspring/decimal"

// Settlement is the residual amounts after a payment is recorded against an
// invoice at confirmation time.
type Settlement struct {
	TotalAmount   decimal.Decimal
	AdvanceAmount decimal.Decimal
}

// ReconcilePayment computes the residual total and the advance after a single
// payment event. The residual may go negative on overpayment; that mirrors
// the observed upstream behavior and is logged, not rejected. AdvanceAmount
// is overwritten, not accumulated: the flow assumes at most one payment event
// per confirm action.
func ReconcilePayment(totalAmount, paymentAmount decimal.Decimal) Settlement {
	return Settlement{
		TotalAmount:   totalAmount.Sub(paymentAmount),
		AdvanceAmount: paymentAmount,
	}
}
