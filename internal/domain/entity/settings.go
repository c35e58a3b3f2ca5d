package entity

import "time"

// SettingsID is the primary key of the single global settings row.
const SettingsID = "global"

// Settings holds global default marketplace credentials, kept as a single
// upserted row. Per-store credentials on Store take precedence; these defaults
// exist so the UI can prefill new stores.
type Settings struct {
	ID              string
	WBToken         string
	WBWarehouseID   string
	OzonClientID    string
	OzonAPIKey      string
	OzonWarehouseID string
	UpdatedAt       time.Time
}
