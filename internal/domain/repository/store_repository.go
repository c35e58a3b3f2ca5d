package repository

import "github.com/Anvarmag/skladoptima/internal/domain/entity"

// StoreRepository defines the persistence port for Store (DIP).
// ListAll is used by the background scheduler; the user-scoped methods serve
// the HTTP layer.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	ListByUser(userID string) ([]*entity.Store, error)
	ListAll() ([]*entity.Store, error)
	Update(store *entity.Store) error
	Delete(id, userID string) error
}
