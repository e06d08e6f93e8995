package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

var _ repository.ProformaInvoiceRepository = (*ProformaInvoiceRepo)(nil)

// ProformaInvoiceRepo implements ProformaInvoiceRepository (usable with pool or tx).
type ProformaInvoiceRepo struct {
	q Querier
}

// NewProformaInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewProformaInvoiceRepository(q Querier) *ProformaInvoiceRepo {
	return &ProformaInvoiceRepo{q: q}
}

// Create persists the invoice header. Charges travel as JSONB.
func (r *ProformaInvoiceRepo) Create(inv *entity.ProformaInvoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	chargesJSON, err := json.Marshal(inv.Charges)
	if err != nil {
		return fmt.Errorf("marshal charges: %w", err)
	}
	query := `
		INSERT INTO proforma_invoices (id, pi_number, party_id, status, delivery_term, payment_term, currency, charges, subtotal, charges_total, total_amount, advance_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		inv.ID, inv.PINumber, inv.PartyID, inv.Status, inv.DeliveryTerm, inv.PaymentTerm,
		inv.Currency, chargesJSON, inv.Subtotal, inv.ChargesTotal, inv.TotalAmount,
		inv.AdvanceAmount, nullIfEmpty(inv.Notes), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pi number already exists: %w", err)
		}
		return fmt.Errorf("insert proforma invoice: %w", err)
	}
	return nil
}

// CreateItem persists one invoice line. Position preserves the form order.
func (r *ProformaInvoiceRepo) CreateItem(item *entity.LineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO proforma_invoice_items (id, invoice_id, product_id, name, hs_code, description, quantity, unit, rate, total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        COALESCE((SELECT MAX(position) + 1 FROM proforma_invoice_items WHERE invoice_id = $2), 0))`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.Name,
		nullIfEmpty(item.HSCode), nullIfEmpty(item.Description),
		item.Quantity, item.Unit, item.Rate, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID returns the full invoice header, or nil when absent.
func (r *ProformaInvoiceRepo) GetByID(id string) (*entity.ProformaInvoice, error) {
	query := `
		SELECT id, pi_number, party_id, status, delivery_term, payment_term, currency,
		       charges, subtotal, charges_total, total_amount, advance_amount,
		       COALESCE(notes, ''), created_at, updated_at
		FROM proforma_invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proforma invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID returns all lines of an invoice in form order.
func (r *ProformaInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id, ''), name, COALESCE(hs_code, ''),
		       COALESCE(description, ''), quantity, unit, rate, total
		FROM proforma_invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		var item entity.LineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.Name,
			&item.HSCode, &item.Description, &item.Quantity, &item.Unit, &item.Rate, &item.Total); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// List returns invoice headers matching the filter, newest first.
func (r *ProformaInvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.ProformaInvoice, error) {
	query := `
		SELECT id, pi_number, party_id, status, delivery_term, payment_term, currency,
		       charges, subtotal, charges_total, total_amount, advance_amount,
		       COALESCE(notes, ''), created_at, updated_at
		FROM proforma_invoices
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR party_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		string(filter.Status), filter.PartyID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list proforma invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProformaInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proforma invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update rewrites the editable header fields and the derived totals. Status
// and advance_amount are deliberately excluded.
func (r *ProformaInvoiceRepo) Update(inv *entity.ProformaInvoice) error {
	chargesJSON, err := json.Marshal(inv.Charges)
	if err != nil {
		return fmt.Errorf("marshal charges: %w", err)
	}
	query := `
		UPDATE proforma_invoices
		SET pi_number     = $2,
		    party_id      = $3,
		    delivery_term = $4,
		    payment_term  = $5,
		    currency      = $6,
		    charges       = $7,
		    subtotal      = $8,
		    charges_total = $9,
		    total_amount  = $10,
		    notes         = $11,
		    updated_at    = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.PINumber, inv.PartyID, inv.DeliveryTerm, inv.PaymentTerm,
		inv.Currency, chargesJSON, inv.Subtotal, inv.ChargesTotal, inv.TotalAmount,
		nullIfEmpty(inv.Notes), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proforma invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update proforma invoice: no row for id %s", inv.ID)
	}
	return nil
}

// ReplaceItems swaps the full line set of an invoice. Callers run this inside
// a transaction together with Update.
func (r *ProformaInvoiceRepo) ReplaceItems(invoiceID string, items []*entity.LineItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM proforma_invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("clear invoice items: %w", err)
	}
	for _, item := range items {
		item.InvoiceID = invoiceID
		if err := r.CreateItem(item); err != nil {
			return err
		}
	}
	return nil
}

// UpdateAmounts partially updates total_amount and advance_amount. Status is
// never touched here: the confirm flow relies on that.
func (r *ProformaInvoiceRepo) UpdateAmounts(id string, totalAmount, advanceAmount decimal.Decimal) error {
	query := `
		UPDATE proforma_invoices
		SET total_amount = $2, advance_amount = $3, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, totalAmount, advanceAmount)
	if err != nil {
		return fmt.Errorf("update invoice amounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice amounts: no row for id %s", id)
	}
	return nil
}

// UpdateStatus writes the status field only.
func (r *ProformaInvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	query := `
		UPDATE proforma_invoices
		SET status = $2, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice status: no row for id %s", id)
	}
	return nil
}

// Delete removes the invoice; items go with it via ON DELETE CASCADE.
func (r *ProformaInvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proforma_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proforma invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.ProformaInvoice, error) {
	var inv entity.ProformaInvoice
	var chargesJSON []byte
	err := row.Scan(
		&inv.ID, &inv.PINumber, &inv.PartyID, &inv.Status, &inv.DeliveryTerm,
		&inv.PaymentTerm, &inv.Currency, &chargesJSON, &inv.Subtotal,
		&inv.ChargesTotal, &inv.TotalAmount, &inv.AdvanceAmount,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(chargesJSON) > 0 {
		if err := json.Unmarshal(chargesJSON, &inv.Charges); err != nil {
			return nil, fmt.Errorf("unmarshal charges: %w", err)
		}
	}
	return &inv, nil
}
