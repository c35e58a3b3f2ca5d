package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Anvarmag/skladoptima/internal/domain"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `sku, store_id, COALESCE(barcode, ''), name,
		stock_master, stock_wb, stock_ozon, created_at, updated_at`

// ProductRepo implements the ProductRepository port over PostgreSQL.
// The primary key is (sku, store_id).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter for products.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Upsert inserts the product or updates name/barcode/stocks of the existing
// row with the same (sku, store_id).
func (r *ProductRepo) Upsert(product *entity.Product) error {
	query := `
		INSERT INTO products (sku, store_id, barcode, name, stock_master, stock_wb, stock_ozon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sku, store_id) DO UPDATE SET
			barcode = COALESCE(EXCLUDED.barcode, products.barcode),
			name = EXCLUDED.name,
			stock_master = EXCLUDED.stock_master,
			stock_wb = EXCLUDED.stock_wb,
			stock_ozon = EXCLUDED.stock_ozon,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		product.SKU, product.StoreID, nullable(product.Barcode), product.Name,
		product.StockMaster, product.StockWB, product.StockOzon,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}
	return nil
}

// GetBySKU fetches one product. Returns (nil, nil) when absent.
func (r *ProductRepo) GetBySKU(storeID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 AND sku = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, storeID, sku).Scan(
		&p.SKU, &p.StoreID, &p.Barcode, &p.Name,
		&p.StockMaster, &p.StockWB, &p.StockOzon, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByStore lists the store's products ordered by name.
func (r *ProductRepo) ListByStore(storeID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.SKU, &p.StoreID, &p.Barcode, &p.Name,
			&p.StockMaster, &p.StockWB, &p.StockOzon, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStocks applies a partial stock update to one row and returns the
// updated product. Nil fields keep their current value. Returns
// domain.ErrNotFound when the row does not exist.
func (r *ProductRepo) UpdateStocks(storeID, sku string, fields entity.StockFields) (*entity.Product, error) {
	query := `
		UPDATE products SET
			stock_master = COALESCE($3, stock_master),
			stock_wb = COALESCE($4, stock_wb),
			stock_ozon = COALESCE($5, stock_ozon),
			updated_at = now()
		WHERE store_id = $1 AND sku = $2
		RETURNING ` + productColumns
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query,
		storeID, sku, fields.Master, fields.WB, fields.Ozon,
	).Scan(
		&p.SKU, &p.StoreID, &p.Barcode, &p.Name,
		&p.StockMaster, &p.StockWB, &p.StockOzon, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update product stocks: %w", err)
	}
	return &p, nil
}

// Delete removes one product.
func (r *ProductRepo) Delete(storeID, sku string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE store_id = $1 AND sku = $2`, storeID, sku)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
