// Package pdf renders the printable proforma invoice with Maroto v2.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Exporter letterhead  │  PROFORMA INVOICE + number   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EXPORTER: address / phone / email                           │
//	│  CONSIGNEE: name + tax id + contact                          │
//	│  TERMS: delivery term | payment term | currency              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | HS Code | Unit | Rate | Amount   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Charges / TOTAL / Advance / Balance      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: notes + validity note                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/exim-suite/tradeflow-api/internal/application/invoicing"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implements invoicing.InvoicePDFGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ invoicing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerateInvoicePDF renders the document and returns its bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.ProformaInvoice,
	buyer *entity.Party,
	items []*entity.LineItem,
	seller invoicing.CompanyInfo,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Proforma Invoice "+inv.PINumber, true).
		WithAuthor(seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(exporterRow(seller))
	m.AddRows(consigneeRow(buyer))
	m.AddRows(termsRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(inv) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: exporter name (left) and document title + PI number + date (right).
func headerRow(inv *entity.ProformaInvoice, seller invoicing.CompanyInfo) core.Row {
	issued := inv.CreatedAt.Format("02 Jan 2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(seller.Address, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PROFORMA INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.PINumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+issued, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// exporterRow: the seller's contact block.
func exporterRow(seller invoicing.CompanyInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EXPORTER / SELLER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Address: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(seller.Address, "—"),
				nonEmpty(seller.Phone, "—"),
				nonEmpty(seller.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// consigneeRow: the buyer's block.
func consigneeRow(buyer *entity.Party) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CONSIGNEE / BUYER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(buyer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tax ID: %s   |   %s   |   Email: %s",
				nonEmpty(buyer.TaxID, "—"),
				nonEmpty(buyer.Country, "—"),
				nonEmpty(buyer.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// termsRow: delivery and payment terms plus the invoice currency.
func termsRow(inv *entity.ProformaInvoice) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	return row.New(11).Add(
		cell("DELIVERY TERM", strings.ToUpper(string(inv.DeliveryTerm))),
		cell("PAYMENT TERM", paymentTermLabel(inv.PaymentTerm)),
		cell("CURRENCY", inv.Currency),
	)
}

// tableHeaderRow: item table header band.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description of goods", 4, align.Left),
		h("HS Code", 2, align.Center),
		h("Unit", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: one row per line item. Amounts are re-derived from quantity
// and rate so the document always matches the arithmetic, not a stored value.
func tableItemRows(items []*entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Name
		if it.Description != "" {
			desc += " / " + it.Description
		}
		amount := it.Quantity.Mul(it.Rate)
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.HSCode, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				nonEmpty(it.Unit, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.Rate.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block. The advance and balance lines only
// appear once a payment has been recorded.
func totalsRow(inv *entity.ProformaInvoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	labels := []core.Component{
		label("Subtotal:"),
		label("Charges:"),
		grandLabel("TOTAL " + inv.Currency + ":"),
	}
	values := []core.Component{
		value(inv.Subtotal.StringFixed(2)),
		value(inv.ChargesTotal.StringFixed(2)),
		grandValue(inv.TotalAmount.StringFixed(2)),
	}
	height := float64(22)
	if inv.AdvanceAmount.IsPositive() {
		balance := inv.TotalAmount.Sub(inv.AdvanceAmount)
		labels = append(labels, label("Advance received:"), label("Balance due:"))
		values = append(values, value(inv.AdvanceAmount.StringFixed(2)), value(balance.StringFixed(2)))
		height = 34
	}

	return row.New(height).Add(
		col.New(3),
		col.New(5).Add(labels...),
		col.New(3).Add(values...),
		col.New(1),
	)
}

// footerRows: free-form notes plus the standard validity line.
func footerRows(inv *entity.ProformaInvoice) []core.Row {
	var rows []core.Row
	if inv.Notes != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("NOTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)))
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(inv.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"This proforma invoice is issued for quotation and advance payment purposes "+
				"and is not a demand for payment. Prices are valid for 30 days from the date of issue.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func paymentTermLabel(t entity.PaymentTerm) string {
	switch t {
	case entity.PaymentAdvance:
		return "ADVANCE"
	case entity.PaymentLC:
		return "LETTER OF CREDIT"
	case entity.Payment30Days:
		return "NET 30 DAYS"
	default:
		return strings.ToUpper(string(t))
	}
}
