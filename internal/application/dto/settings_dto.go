package dto

import "time"

// SettingsRequest global marketplace credential defaults.
type SettingsRequest struct {
	WBToken         string `json:"wbToken"`
	WBWarehouseID   string `json:"wbWarehouseId"`
	OzonClientID    string `json:"ozonClientId"`
	OzonAPIKey      string `json:"ozonApiKey"`
	OzonWarehouseID string `json:"ozonWarehouseId"`
}

// SettingsResponse stored global defaults.
type SettingsResponse struct {
	WBToken         string    `json:"wbToken"`
	WBWarehouseID   string    `json:"wbWarehouseId"`
	OzonClientID    string    `json:"ozonClientId"`
	OzonAPIKey      string    `json:"ozonApiKey"`
	OzonWarehouseID string    `json:"ozonWarehouseId"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
