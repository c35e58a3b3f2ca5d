package dto

import "time"

// StoreRequest create/update payload. Credential fields are optional; empty
// means "not configured" for that marketplace.
type StoreRequest struct {
	Name            string `json:"name"`
	WBToken         string `json:"wbToken"`
	WBWarehouseID   string `json:"wbWarehouseId"`
	OzonClientID    string `json:"ozonClientId"`
	OzonAPIKey      string `json:"ozonApiKey"`
	OzonWarehouseID string `json:"ozonWarehouseId"`
}

// StoreResponse public store view.
type StoreResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	WBToken         string    `json:"wbToken,omitempty"`
	WBWarehouseID   string    `json:"wbWarehouseId,omitempty"`
	OzonClientID    string    `json:"ozonClientId,omitempty"`
	OzonAPIKey      string    `json:"ozonApiKey,omitempty"`
	OzonWarehouseID string    `json:"ozonWarehouseId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
