// Package ozon implements the Ozon marketplace gateway over the Ozon Seller
// API (v2 FBS stock endpoints).
package ozon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
)

// Compile-time check that Client implements the Ozon gateway port.
var _ ports.OzonGateway = (*Client)(nil)

const defaultBaseURL = "https://api-seller.ozon.ru"

// Client talks to the Ozon Seller API. Ozon identifies products by seller SKU
// (offer_id) plus a numeric warehouse id.
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

// ── Wire structures of the Ozon stocks API ────────────────────────────────────

type pushStock struct {
	OfferID     string `json:"offer_id"`
	Stock       int    `json:"stock"`
	WarehouseID int64  `json:"warehouse_id"`
}

type pushRequest struct {
	Stocks []pushStock `json:"stocks"`
}

type pullRequest struct {
	OfferID []string `json:"offer_id"`
	Limit   int      `json:"limit"`
}

type pullResponse struct {
	Products []struct {
		OfferID     string `json:"offer_id"`
		WarehouseID int64  `json:"warehouse_id"`
		Present     int    `json:"present"`
	} `json:"products"`
	Error json.RawMessage `json:"error"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// PushStock overwrites the stock for one offer_id on the configured warehouse.
// POST /v2/products/stocks. A warehouse id that is not numeric is a structured
// failure, not an error return.
func (c *Client) PushStock(ctx context.Context, offerID string, amount int, creds ports.OzonCredentials) ports.PushResult {
	warehouseID, err := strconv.ParseInt(strings.TrimSpace(creds.WarehouseID), 10, 64)
	if err != nil {
		return ports.PushResult{Success: false, Detail: "invalid warehouse id: " + creds.WarehouseID}
	}

	body, err := json.Marshal(pushRequest{Stocks: []pushStock{{
		OfferID:     offerID,
		Stock:       amount,
		WarehouseID: warehouseID,
	}}})
	if err != nil {
		return ports.PushResult{Success: false, Detail: "encode request: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/products/stocks", bytes.NewReader(body))
	if err != nil {
		return ports.PushResult{Success: false, Detail: "build request: " + err.Error()}
	}
	c.setHeaders(req, creds)

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

// PullStocks fetches FBS warehouse stock rows for the given offer ids.
// POST /v2/product/info/stocks-by-warehouse/fbs. Rows for other warehouses are
// returned as-is; filtering to the store's warehouse is the caller's concern.
func (c *Client) PullStocks(ctx context.Context, offerIDs []string, creds ports.OzonCredentials) ([]ports.OzonStockRow, error) {
	body, err := json.Marshal(pullRequest{OfferID: offerIDs, Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("ozon pull: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/product/info/stocks-by-warehouse/fbs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ozon pull: build request: %w", err)
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ozon pull: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ozon pull: HTTP %d: %s", resp.StatusCode, detail)
	}

	var out pullResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ozon pull: decode response: %w", err)
	}
	if len(out.Error) > 0 && string(out.Error) != "null" {
		return nil, fmt.Errorf("ozon pull: API error: %s", out.Error)
	}

	rows := make([]ports.OzonStockRow, 0, len(out.Products))
	for _, p := range out.Products {
		rows = append(rows, ports.OzonStockRow{
			OfferID:     p.OfferID,
			WarehouseID: p.WarehouseID,
			Present:     p.Present,
		})
	}
	return rows, nil
}

func (c *Client) setHeaders(req *http.Request, creds ports.OzonCredentials) {
	req.Header.Set("Client-Id", creds.ClientID)
	req.Header.Set("Api-Key", creds.APIKey)
	req.Header.Set("Content-Type", "application/json")
}
