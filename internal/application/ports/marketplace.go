package ports

import "context"

// PushResult is the structured outcome of a single stock push. Adapters never
// return a Go error for marketplace-side failures: a non-2xx response or a
// network problem comes back as Success=false with the detail captured, and
// the caller decides how to log or retry it.
type PushResult struct {
	Success    bool
	StatusCode int    // HTTP status, 0 on network failure
	Detail     string // response body or transport error text
}

// WBCredentials authenticates one store against the Wildberries Seller API.
type WBCredentials struct {
	Token       string
	WarehouseID string
}

// OzonCredentials authenticates one store against the Ozon Seller API.
type OzonCredentials struct {
	ClientID    string
	APIKey      string
	WarehouseID string
}

// OzonStockRow is one row of an Ozon warehouse stock report. WarehouseID is
// kept as the raw numeric value; matching against a store's configured
// warehouse is done by the caller on trimmed string equality.
type OzonStockRow struct {
	OfferID     string
	WarehouseID int64
	Present     int
}

// WBGateway is the outbound capability port for Wildberries. Products are
// identified by barcode.
type WBGateway interface {
	PushStock(ctx context.Context, barcode string, amount int, creds WBCredentials) PushResult
	PullStocks(ctx context.Context, barcodes []string, creds WBCredentials) (map[string]int, error)
}

// OzonGateway is the outbound capability port for Ozon. Products are
// identified by seller SKU (offer_id) scoped to a warehouse.
type OzonGateway interface {
	PushStock(ctx context.Context, offerID string, amount int, creds OzonCredentials) PushResult
	PullStocks(ctx context.Context, offerIDs []string, creds OzonCredentials) ([]OzonStockRow, error)
}
