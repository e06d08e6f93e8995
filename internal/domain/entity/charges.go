package entity

// OtherCharge is an ad-hoc named charge entered on the form.
type OtherCharge struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// ChargesConfig holds the charge fields of a proforma invoice exactly as the
// form submits them. Amounts are kept as strings because screens send
// partially filled values; unparseable entries contribute zero when totals
// are computed, they are not validation errors.
//
// DutyPercent and VatPercent apply against the raw products subtotal, never
// against subtotal plus other charges.
type ChargesConfig struct {
	FreightCharge                 string        `json:"freightCharge,omitempty"`
	Insurance                     string        `json:"insurance,omitempty"`
	DestinationPortHandlingCharge string        `json:"destinationPortHandlingCharge,omitempty"`
	TransportationCharge          string        `json:"transportationCharge,omitempty"`
	DutyPercent                   string        `json:"dutyPercent,omitempty"`
	VatPercent                    string        `json:"vatPercent,omitempty"`
	OtherCharges                  []OtherCharge `json:"otherCharges,omitempty"`
	// NoOtherCharges suppresses every charge when the delivery term is FOB.
	NoOtherCharges bool `json:"noOtherCharges,omitempty"`
}
