package entity

import "time"

// Store is a seller account with optional credentials per marketplace.
// A store with no credentials for a marketplace is simply skipped for that
// marketplace during synchronization; that is not an error state.
type Store struct {
	ID     string
	UserID string
	Name   string

	// Wildberries Seller API credentials (both required for WB sync).
	WBToken       string
	WBWarehouseID string

	// Ozon Seller API credentials (all three required for Ozon sync).
	OzonClientID    string
	OzonAPIKey      string
	OzonWarehouseID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasWB reports whether the store is configured for Wildberries.
func (s *Store) HasWB() bool {
	return s.WBToken != "" && s.WBWarehouseID != ""
}

// HasOzon reports whether the store is configured for Ozon.
func (s *Store) HasOzon() bool {
	return s.OzonClientID != "" && s.OzonAPIKey != "" && s.OzonWarehouseID != ""
}
