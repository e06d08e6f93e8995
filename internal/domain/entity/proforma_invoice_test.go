package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
)

func TestInvoiceStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to entity.InvoiceStatus
		allowed  bool
	}{
		{entity.StatusDraft, entity.StatusPending, true},
		{entity.StatusDraft, entity.StatusConfirmed, true},
		{entity.StatusDraft, entity.StatusCancelled, true},
		{entity.StatusPending, entity.StatusConfirmed, true},
		{entity.StatusPending, entity.StatusCancelled, true},
		{entity.StatusPending, entity.StatusDraft, false},
		{entity.StatusConfirmed, entity.StatusDraft, false},
		{entity.StatusConfirmed, entity.StatusPending, false},
		{entity.StatusConfirmed, entity.StatusCancelled, false},
		{entity.StatusCancelled, entity.StatusConfirmed, false},
		{entity.StatusCancelled, entity.StatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestInvoiceStatus_TerminalStates(t *testing.T) {
	assert.False(t, entity.StatusDraft.Terminal())
	assert.False(t, entity.StatusPending.Terminal())
	assert.True(t, entity.StatusConfirmed.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())
}

func TestInvoiceStatus_MutabilityMatchesPreConfirmation(t *testing.T) {
	assert.True(t, entity.StatusDraft.Mutable())
	assert.True(t, entity.StatusPending.Mutable())
	assert.False(t, entity.StatusConfirmed.Mutable())
	assert.False(t, entity.StatusCancelled.Mutable())
}

func TestInvoiceStatus_Valid(t *testing.T) {
	assert.True(t, entity.StatusDraft.Valid())
	assert.False(t, entity.InvoiceStatus("shipped").Valid())
}

func TestDeliveryAndPaymentTerms_Valid(t *testing.T) {
	assert.True(t, entity.TermFOB.Valid())
	assert.True(t, entity.TermCIF.Valid())
	assert.True(t, entity.TermDDP.Valid())
	assert.False(t, entity.DeliveryTerm("exw").Valid())

	assert.True(t, entity.PaymentAdvance.Valid())
	assert.True(t, entity.PaymentLC.Valid())
	assert.True(t, entity.Payment30Days.Valid())
	assert.False(t, entity.PaymentTerm("60days").Valid())
}
