package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implements the SettingsRepository port over PostgreSQL.
// There is exactly one row, keyed by entity.SettingsID.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository builds the persistence adapter for global settings.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get fetches the global settings row. Returns (nil, nil) when never saved.
func (r *SettingsRepo) Get() (*entity.Settings, error) {
	query := `
		SELECT id, COALESCE(wb_token, ''), COALESCE(wb_warehouse_id, ''),
			COALESCE(ozon_client_id, ''), COALESCE(ozon_api_key, ''), COALESCE(ozon_warehouse_id, ''),
			updated_at
		FROM settings WHERE id = $1`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query, entity.SettingsID).Scan(
		&s.ID, &s.WBToken, &s.WBWarehouseID,
		&s.OzonClientID, &s.OzonAPIKey, &s.OzonWarehouseID, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the global settings row and returns the stored value.
func (r *SettingsRepo) Upsert(settings *entity.Settings) (*entity.Settings, error) {
	query := `
		INSERT INTO settings (id, wb_token, wb_warehouse_id, ozon_client_id, ozon_api_key, ozon_warehouse_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			wb_token = EXCLUDED.wb_token,
			wb_warehouse_id = EXCLUDED.wb_warehouse_id,
			ozon_client_id = EXCLUDED.ozon_client_id,
			ozon_api_key = EXCLUDED.ozon_api_key,
			ozon_warehouse_id = EXCLUDED.ozon_warehouse_id,
			updated_at = now()
		RETURNING id, COALESCE(wb_token, ''), COALESCE(wb_warehouse_id, ''),
			COALESCE(ozon_client_id, ''), COALESCE(ozon_api_key, ''), COALESCE(ozon_warehouse_id, ''),
			updated_at`
	var s entity.Settings
	err := r.q.QueryRow(context.Background(), query,
		entity.SettingsID,
		nullable(settings.WBToken), nullable(settings.WBWarehouseID),
		nullable(settings.OzonClientID), nullable(settings.OzonAPIKey), nullable(settings.OzonWarehouseID),
	).Scan(
		&s.ID, &s.WBToken, &s.WBWarehouseID,
		&s.OzonClientID, &s.OzonAPIKey, &s.OzonWarehouseID, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}
	return &s, nil
}
