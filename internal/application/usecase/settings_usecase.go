package usecase

import (
	"github.com/Anvarmag/skladoptima/internal/application/dto"
	"github.com/Anvarmag/skladoptima/internal/domain/entity"
	"github.com/Anvarmag/skladoptima/internal/domain/repository"
)

// SettingsUseCase reads and writes the global marketplace credential defaults.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get returns the stored defaults, or an empty response when never saved.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &dto.SettingsResponse{}, nil
	}
	return toSettingsResponse(settings), nil
}

// Save upserts the defaults.
func (uc *SettingsUseCase) Save(in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	saved, err := uc.repo.Upsert(&entity.Settings{
		ID:              entity.SettingsID,
		WBToken:         in.WBToken,
		WBWarehouseID:   in.WBWarehouseID,
		OzonClientID:    in.OzonClientID,
		OzonAPIKey:      in.OzonAPIKey,
		OzonWarehouseID: in.OzonWarehouseID,
	})
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(saved), nil
}

func toSettingsResponse(s *entity.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		WBToken:         s.WBToken,
		WBWarehouseID:   s.WBWarehouseID,
		OzonClientID:    s.OzonClientID,
		OzonAPIKey:      s.OzonAPIKey,
		OzonWarehouseID: s.OzonWarehouseID,
		UpdatedAt:       s.UpdatedAt,
	}
}
