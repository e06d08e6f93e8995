package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo implements PartyRepository (usable with pool or tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository builds the adapter. Pass a pool or tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// Create persists a party.
func (r *PartyRepo) Create(party *entity.Party) error {
	if party.ID == "" {
		party.ID = uuid.New().String()
	}
	query := `
		INSERT INTO parties (id, name, type, email, phone, address, country, tax_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, party.Type, nullIfEmpty(party.Email), nullIfEmpty(party.Phone),
		nullIfEmpty(party.Address), nullIfEmpty(party.Country), nullIfEmpty(party.TaxID),
		party.CreatedAt, party.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tax id already registered: %w", err)
		}
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID returns a party by ID, or nil when absent.
func (r *PartyRepo) GetByID(id string) (*entity.Party, error) {
	query := partySelect + ` WHERE id = $1`
	party, err := scanParty(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return party, nil
}

// GetByTaxID returns a party by tax id, or nil when absent.
func (r *PartyRepo) GetByTaxID(taxID string) (*entity.Party, error) {
	query := partySelect + ` WHERE tax_id = $1`
	party, err := scanParty(r.q.QueryRow(context.Background(), query, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party by tax id: %w", err)
	}
	return party, nil
}

// List returns parties, optionally filtered by type.
func (r *PartyRepo) List(partyType entity.PartyType, limit, offset int) ([]*entity.Party, error) {
	query := partySelect + `
		WHERE ($1 = '' OR type = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(partyType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		party, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, party)
	}
	return list, rows.Err()
}

// Update rewrites the editable party fields.
func (r *PartyRepo) Update(party *entity.Party) error {
	query := `
		UPDATE parties
		SET name = $2, email = $3, phone = $4, address = $5, country = $6, tax_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		party.ID, party.Name, nullIfEmpty(party.Email), nullIfEmpty(party.Phone),
		nullIfEmpty(party.Address), nullIfEmpty(party.Country), nullIfEmpty(party.TaxID),
		party.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update party: %w", err)
	}
	return nil
}

// Delete removes a party.
func (r *PartyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}

const partySelect = `
	SELECT id, name, type, COALESCE(email, ''), COALESCE(phone, ''),
	       COALESCE(address, ''), COALESCE(country, ''), COALESCE(tax_id, ''),
	       created_at, updated_at
	FROM parties`

func scanParty(row pgx.Row) (*entity.Party, error) {
	var party entity.Party
	err := row.Scan(&party.ID, &party.Name, &party.Type, &party.Email, &party.Phone,
		&party.Address, &party.Country, &party.TaxID, &party.CreatedAt, &party.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &party, nil
}
