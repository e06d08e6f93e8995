package entity

import "time"

// PartyType distinguishes customers from suppliers.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartySupplier PartyType = "supplier"
)

// Valid reports whether t is a known party type.
func (t PartyType) Valid() bool {
	return t == PartyCustomer || t == PartySupplier
}

// Party is a trading counterparty: a customer (buyer/consignee) or a supplier.
type Party struct {
	ID        string
	Name      string
	Type      PartyType
	Email     string
	Phone     string
	Address   string
	Country   string
	TaxID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
