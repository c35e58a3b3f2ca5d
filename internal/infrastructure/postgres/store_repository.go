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

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, user_id, name,
		COALESCE(wb_token, ''), COALESCE(wb_warehouse_id, ''),
		COALESCE(ozon_client_id, ''), COALESCE(ozon_api_key, ''), COALESCE(ozon_warehouse_id, ''),
		created_at, updated_at`

// StoreRepo implements the StoreRepository port over PostgreSQL.
// Empty credential strings are stored as NULL so "not configured" is explicit
// at the schema level.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository builds the persistence adapter for stores.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persists a new store.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, user_id, name, wb_token, wb_warehouse_id, ozon_client_id, ozon_api_key, ozon_warehouse_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.UserID, store.Name,
		nullable(store.WBToken), nullable(store.WBWarehouseID),
		nullable(store.OzonClientID), nullable(store.OzonAPIKey), nullable(store.OzonWarehouseID),
		store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID fetches a store by id. Returns (nil, nil) when absent.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`
	s, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// ListByUser lists the user's stores.
func (r *StoreRepo) ListByUser(userID string) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE user_id = $1 ORDER BY created_at`
	return r.list(query, userID)
}

// ListAll lists every store, for the background sync cycle.
func (r *StoreRepo) ListAll() ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at`
	return r.list(query)
}

// Update rewrites the store's name and credentials.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, wb_token = $3, wb_warehouse_id = $4,
			ozon_client_id = $5, ozon_api_key = $6, ozon_warehouse_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name,
		nullable(store.WBToken), nullable(store.WBWarehouseID),
		nullable(store.OzonClientID), nullable(store.OzonAPIKey), nullable(store.OzonWarehouseID),
		store.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the user's store; products cascade at the schema level.
func (r *StoreRepo) Delete(id, userID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM stores WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StoreRepo) list(query string, args ...any) ([]*entity.Store, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name,
			&s.WBToken, &s.WBWarehouseID,
			&s.OzonClientID, &s.OzonAPIKey, &s.OzonWarehouseID,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StoreRepo) scanOne(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.UserID, &s.Name,
		&s.WBToken, &s.WBWarehouseID,
		&s.OzonClientID, &s.OzonAPIKey, &s.OzonWarehouseID,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// nullable maps "" to NULL for optional credential columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
