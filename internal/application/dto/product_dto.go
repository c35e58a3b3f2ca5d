package dto

import "time"

// ProductItem one element of the bulk upsert payload. Stock pointers
// distinguish "not supplied" (keep/default) from an explicit zero.
type ProductItem struct {
	SKU         string `json:"sku"`
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	StockMaster *int   `json:"stock_master"`
	StockWB     *int   `json:"stock_wb"`
	StockOzon   *int   `json:"stock_ozon"`
}

// BulkUpsertResponse summary of a bulk product upsert.
type BulkUpsertResponse struct {
	Processed int               `json:"processed"`
	Data      []ProductResponse `json:"data"`
}

// UpdateStocksRequest payload for the single-product stock update. Supplying
// stock_master triggers marketplace pushes; wb/ozon values are direct
// overwrites without a push.
type UpdateStocksRequest struct {
	StockMaster *int `json:"stock_master"`
	StockWB     *int `json:"stock_wb"`
	StockOzon   *int `json:"stock_ozon"`
}

// MarketplaceStatusResponse per-marketplace outcome tags: "ok" | "error" | "skipped".
type MarketplaceStatusResponse struct {
	WB   string `json:"wb"`
	Ozon string `json:"ozon"`
}

// ProductResponse public product view.
type ProductResponse struct {
	SKU         string    `json:"sku"`
	StoreID     string    `json:"storeId"`
	Barcode     string    `json:"barcode,omitempty"`
	Name        string    `json:"name"`
	StockMaster int       `json:"stock_master"`
	StockWB     int       `json:"stock_wb"`
	StockOzon   int       `json:"stock_ozon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateStocksResponse product plus push outcome.
type UpdateStocksResponse struct {
	Product      ProductResponse           `json:"product"`
	Marketplaces MarketplaceStatusResponse `json:"marketplaces"`
}
