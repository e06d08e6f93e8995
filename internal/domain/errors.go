package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("access denied")
	ErrConflict         = errors.New("conflict with current state")
	ErrAlreadyConfirmed = errors.New("proforma invoice already confirmed")
)

// PartialApplicationError reports a confirm-order that stopped halfway: the
// amounts write succeeded but the status write failed, leaving the invoice
// with reduced totals and a pre-confirmation status. Operators need to tell
// this case apart from a plain gateway failure in order to reconcile by hand.
type PartialApplicationError struct {
	InvoiceID string
	Err       error // status write failure
}

func (e *PartialApplicationError) Error() string {
	return fmt.Sprintf("invoice %s: amounts updated but status write failed, manual reconciliation required: %v", e.InvoiceID, e.Err)
}

func (e *PartialApplicationError) Unwrap() error { return e.Err }
