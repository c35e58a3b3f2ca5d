package repository

import "github.com/Anvarmag/skladoptima/internal/domain/entity"

// SettingsRepository defines the persistence port for the global settings row.
type SettingsRepository interface {
	Get() (*entity.Settings, error)
	Upsert(settings *entity.Settings) (*entity.Settings, error)
}
