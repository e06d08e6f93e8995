package repository

import "github.com/exim-suite/tradeflow-api/internal/domain/entity"

// PartyRepository is the persistence port for customers and suppliers.
type PartyRepository interface {
	Create(party *entity.Party) error
	GetByID(id string) (*entity.Party, error)
	GetByTaxID(taxID string) (*entity.Party, error)
	List(partyType entity.PartyType, limit, offset int) ([]*entity.Party, error)
	Update(party *entity.Party) error
	Delete(id string) error
}
