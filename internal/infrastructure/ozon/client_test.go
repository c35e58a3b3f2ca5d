package ozon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anvarmag/skladoptima/internal/application/ports"
)

func testCreds() ports.OzonCredentials {
	return ports.OzonCredentials{ClientID: "client-1", APIKey: "key-1", WarehouseID: "123456"}
}

func TestPushStock_Success(t *testing.T) {
	var gotPath string
	var gotHeaders http.Header
	var gotBody pushRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"result":[{"offer_id":"sku-1","updated":true}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res := c.PushStock(context.Background(), "sku-1", 15, testCreds())

	assert.True(t, res.Success)
	assert.Equal(t, "/v2/products/stocks", gotPath)
	assert.Equal(t, "client-1", gotHeaders.Get("Client-Id"))
	assert.Equal(t, "key-1", gotHeaders.Get("Api-Key"))
	require.Len(t, gotBody.Stocks, 1)
	assert.Equal(t, pushStock{OfferID: "sku-1", Stock: 15, WarehouseID: 123456}, gotBody.Stocks[0])
}

func TestPushStock_InvalidWarehouseID_StructuredFailure(t *testing.T) {
	c := New("http://unused", time.Second)
	res := c.PushStock(context.Background(), "sku-1", 15, ports.OzonCredentials{
		ClientID: "client-1", APIKey: "key-1", WarehouseID: "not-a-number",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Detail, "invalid warehouse id")
}

func TestPushStock_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":7,"message":"access denied"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res := c.PushStock(context.Background(), "sku-1", 15, testCreds())

	assert.False(t, res.Success)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, res.Detail, "access denied")
}

func TestPullStocks_ReturnsAllWarehouseRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/product/info/stocks-by-warehouse/fbs", r.URL.Path)

		var in pullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, []string{"sku-1", "sku-2"}, in.OfferID)
		assert.Equal(t, 1000, in.Limit)

		_, _ = w.Write([]byte(`{"products":[
			{"offer_id":"sku-1","warehouse_id":123456,"present":5},
			{"offer_id":"sku-1","warehouse_id":999,"present":8},
			{"offer_id":"sku-2","warehouse_id":123456,"present":0}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	rows, err := c.PullStocks(context.Background(), []string{"sku-1", "sku-2"}, testCreds())
	require.NoError(t, err)

	// Rows for foreign warehouses are passed through untouched.
	assert.Equal(t, []ports.OzonStockRow{
		{OfferID: "sku-1", WarehouseID: 123456, Present: 5},
		{OfferID: "sku-1", WarehouseID: 999, Present: 8},
		{OfferID: "sku-2", WarehouseID: 123456, Present: 0},
	}, rows)
}

func TestPullStocks_APIErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[],"error":{"code":"TOO_MANY_REQUESTS"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.PullStocks(context.Background(), []string{"sku-1"}, testCreds())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOO_MANY_REQUESTS")
}

func TestPullStocks_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.PullStocks(context.Background(), []string{"sku-1"}, testCreds())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNew_Defaults(t *testing.T) {
	c := New("", 0)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}
