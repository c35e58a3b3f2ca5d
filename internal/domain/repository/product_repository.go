package repository

import "github.com/Anvarmag/skladoptima/internal/domain/entity"

// ProductRepository defines the persistence port for Product (DIP).
// Products are keyed by (sku, storeID); every stock mutation targets exactly
// one row.
type ProductRepository interface {
	Upsert(product *entity.Product) error
	GetBySKU(storeID, sku string) (*entity.Product, error)
	ListByStore(storeID string) ([]*entity.Product, error)
	UpdateStocks(storeID, sku string, fields entity.StockFields) (*entity.Product, error)
	Delete(storeID, sku string) error
}
