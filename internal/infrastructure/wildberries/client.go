// Package wildberries implements the WB marketplace gateway over the
// Wildberries Seller API v3.
package wildberries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
)

// Compile-time check that Client implements the WB gateway port.
var _ ports.WBGateway = (*Client)(nil)

const defaultBaseURL = "https://marketplace-api.wildberries.ru"

// Client talks to the Wildberries marketplace API. WB identifies products by
// barcode, sent in the "sku" field of the stocks endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds the client. baseURL may be empty to use the production API;
// timeout bounds every outbound request (zero means 10s).
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Wire structures of the WB stocks API ──────────────────────────────────────

type stockItem struct {
	SKU    string `json:"sku"`
	Amount int    `json:"amount"`
}

type pushRequest struct {
	Stocks []stockItem `json:"stocks"`
}

type pullRequest struct {
	SKUs []string `json:"skus"`
}

type pullResponse struct {
	Stocks []stockItem `json:"stocks"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// PushStock overwrites the stock for one barcode on the given warehouse.
// PUT /api/v3/stocks/{warehouseId}. All failures come back as a PushResult,
// never as a panic or an unwrapped transport error.
func (c *Client) PushStock(ctx context.Context, barcode string, amount int, creds ports.WBCredentials) ports.PushResult {
	url := fmt.Sprintf("%s/api/v3/stocks/%s", c.baseURL, creds.WarehouseID)

	body, err := json.Marshal(pushRequest{Stocks: []stockItem{{SKU: barcode, Amount: amount}}})
	if err != nil {
		return ports.PushResult{Success: false, Detail: "encode request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return ports.PushResult{Success: false, Detail: "build request: " + err.Error()}
	}
	req.Header.Set("Authorization", creds.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.PushResult{Success: false, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ports.PushResult{Success: false, StatusCode: resp.StatusCode, Detail: string(detail)}
	}
	return ports.PushResult{Success: true, StatusCode: resp.StatusCode}
}

// PullStocks fetches the current warehouse stock for the given barcodes.
// POST /api/v3/stocks/{warehouseId}. Barcodes absent from the response are
// simply missing from the map ("no data", not an error).
func (c *Client) PullStocks(ctx context.Context, barcodes []string, creds ports.WBCredentials) (map[string]int, error) {
	url := fmt.Sprintf("%s/api/v3/stocks/%s", c.baseURL, creds.WarehouseID)

	body, err := json.Marshal(pullRequest{SKUs: barcodes})
	if err != nil {
		return nil, fmt.Errorf("wb pull: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("wb pull: build request: %w", err)
	}
	req.Header.Set("Authorization", creds.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wb pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("wb pull: HTTP %d: %s", resp.StatusCode, detail)
	}

	var out pullResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("wb pull: decode response: %w", err)
	}

	stocks := make(map[string]int, len(out.Stocks))
	for _, s := range out.Stocks {
		stocks[s.SKU] = s.Amount
	}
	return stocks, nil
}
