package usecase

import (
	"bytes"
	"io"
	"time"

	"github.com/Anvarmag/skladoptima/internal/application/dto"
	"github.com/Anvarmag/skladoptima/internal/application/importer"
	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
)

// ProductUseCase catalog operations: listing and bulk upsert. Stock updates
// that reach marketplaces go through sync.StockUpdater instead.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// List lists a store's products.
func (uc *ProductUseCase) List(storeID string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// BulkUpsert saves a batch of products by (sku, storeID). Quantities not
// supplied default to 0 on insert.
func (uc *ProductUseCase) BulkUpsert(storeID string, items []dto.ProductItem) (*dto.BulkUpsertResponse, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	saved := make([]dto.ProductResponse, 0, len(items))
	for _, item := range items {
		if item.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		product := &entity.Product{
			SKU:         item.SKU,
			StoreID:     storeID,
			Barcode:     item.Barcode,
			Name:        item.Name,
			StockMaster: valueOrZero(item.StockMaster),
			StockWB:     valueOrZero(item.StockWB),
			StockOzon:   valueOrZero(item.StockOzon),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.repo.Upsert(product); err != nil {
			return nil, err
		}
		saved = append(saved, *ToProductResponse(product))
	}
	return &dto.BulkUpsertResponse{Processed: len(saved), Data: saved}, nil
}

// Delete removes one product.
func (uc *ProductUseCase) Delete(storeID, sku string) error {
	return uc.repo.Delete(storeID, sku)
}

// ImportXLSX parses an uploaded catalog workbook and bulk upserts its rows.
func (uc *ProductUseCase) ImportXLSX(storeID string, r io.Reader) (*dto.BulkUpsertResponse, error) {
	items, err := importer.ParseCatalog(r)
	if err != nil {
		return nil, err
	}
	return uc.BulkUpsert(storeID, items)
}

// ExportXLSX renders the store's catalog as an xlsx workbook.
func (uc *ProductUseCase) ExportXLSX(storeID string) (*bytes.Buffer, error) {
	products, err := uc.repo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	return importer.WriteCatalog(products)
}

// ToProductResponse maps the entity to its public view.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		SKU:         p.SKU,
		StoreID:     p.StoreID,
		Barcode:     p.Barcode,
		Name:        p.Name,
		StockMaster: p.StockMaster,
		StockWB:     p.StockWB,
		StockOzon:   p.StockOzon,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
