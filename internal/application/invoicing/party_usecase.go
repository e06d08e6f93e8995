package invoicing

import (
	"time"

	"github.com/google/uuid"

	"github.com/exim-suite/tradeflow-api/internal/application/dto"
	"github.com/exim-suite/tradeflow-api/internal/domain"
	"github.com/exim-suite/tradeflow-api/internal/domain/entity"
	"github.com/exim-suite/tradeflow-api/internal/domain/repository"
)

// PartyUseCase covers customer and supplier management.
type PartyUseCase struct {
	repo repository.PartyRepository
}

// NewPartyUseCase builds the use case.
func NewPartyUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo}
}

// Create registers a new counterparty.
func (uc *PartyUseCase) Create(in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	partyType := entity.PartyType(in.Type)
	if in.Name == "" || !partyType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxID != "" {
		existing, _ := uc.repo.GetByTaxID(in.TaxID)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	party := &entity.Party{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      partyType,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Country:   in.Country,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(party); err != nil {
		return nil, err
	}
	return partyToResponse(party), nil
}

// Get returns a party by id.
func (uc *PartyUseCase) Get(id string) (*dto.PartyResponse, error) {
	party, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	return partyToResponse(party), nil
}

// List returns parties, optionally filtered by type.
func (uc *PartyUseCase) List(partyType string, page dto.PageRequest) ([]*dto.PartyResponse, error) {
	if partyType != "" && !entity.PartyType(partyType).Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(entity.PartyType(partyType), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, partyToResponse(p))
	}
	return out, nil
}

// Update edits a party. Type is fixed at creation.
func (uc *PartyUseCase) Update(id string, in dto.UpdatePartyRequest) (*dto.PartyResponse, error) {
	party, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	party.Name = in.Name
	party.Email = in.Email
	party.Phone = in.Phone
	party.Address = in.Address
	party.Country = in.Country
	party.TaxID = in.TaxID
	party.UpdatedAt = time.Now()
	if err := uc.repo.Update(party); err != nil {
		return nil, err
	}
	return partyToResponse(party), nil
}

// Delete removes a party.
func (uc *PartyUseCase) Delete(id string) error {
	party, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if party == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func partyToResponse(p *entity.Party) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:      p.ID,
		Name:    p.Name,
		Type:    string(p.Type),
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
		Country: p.Country,
		TaxID:   p.TaxID,
	}
}
