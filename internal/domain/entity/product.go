package entity

import "time"

// Product is one catalog position, identified by (SKU, StoreID).
//
// Three stock fields are tracked independently: StockMaster is the local
// system-of-record count; StockWB and StockOzon hold the last value pushed to
// or confirmed from the respective marketplace. Right after a successful
// reconciliation all three match for every marketplace the store has
// credentials for.
//
// Barcode is required for any Wildberries operation: a product without one is
// excluded from WB sync until a barcode is added.
type Product struct {
	SKU     string
	StoreID string
	Barcode string
	Name    string

	StockMaster int
	StockWB     int
	StockOzon   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockFields is a partial update of the three stock quantities.
// Nil fields are left untouched.
type StockFields struct {
	Master *int
	WB     *int
	Ozon   *int
}

// IsZero reports whether no field is set.
func (f StockFields) IsZero() bool {
	return f.Master == nil && f.WB == nil && f.Ozon == nil
}
