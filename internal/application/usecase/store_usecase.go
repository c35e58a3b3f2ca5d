package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
)

// StoreUseCase CRUD for stores, always scoped to the owning user.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase builds the use case.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create creates a store for the user. Credentials may be empty.
func (uc *StoreUseCase) Create(userID string, in dto.StoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            in.Name,
		WBToken:         in.WBToken,
		WBWarehouseID:   in.WBWarehouseID,
		OzonClientID:    in.OzonClientID,
		OzonAPIKey:      in.OzonAPIKey,
		OzonWarehouseID: in.OzonWarehouseID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lists the user's stores.
func (uc *StoreUseCase) List(userID string) ([]dto.StoreResponse, error) {
	stores, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// Update replaces the store's name and credentials. Only the owner may update.
func (uc *StoreUseCase) Update(userID, storeID string, in dto.StoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		store.Name = in.Name
	}
	store.WBToken = in.WBToken
	store.WBWarehouseID = in.WBWarehouseID
	store.OzonClientID = in.OzonClientID
	store.OzonAPIKey = in.OzonAPIKey
	store.OzonWarehouseID = in.OzonWarehouseID
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Delete removes the user's store; its products cascade.
func (uc *StoreUseCase) Delete(userID, storeID string) error {
	return uc.repo.Delete(storeID, userID)
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:              s.ID,
		Name:            s.Name,
		WBToken:         s.WBToken,
		WBWarehouseID:   s.WBWarehouseID,
		OzonClientID:    s.OzonClientID,
		OzonAPIKey:      s.OzonAPIKey,
		OzonWarehouseID: s.OzonWarehouseID,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
