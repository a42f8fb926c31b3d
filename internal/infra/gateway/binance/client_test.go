package binance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/internal/infra/gateway/binance"
)

func TestClient_Ticker24h(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ticker/24hr", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"65000.50","priceChangePercent":"2.5","quoteVolume":"2500000000.00"},
			{"symbol":"ETHUSDT","lastPrice":"3500.00","priceChangePercent":"-1.2","quoteVolume":"900000000.00"}
		]`))
	}))
	defer server.Close()

	client := binance.NewClient(server.URL, 5*time.Second)

	tickers, err := client.Ticker24h(context.Background())
	require.NoError(t, err)
	require.Len(t, tickers, 2)

	assert.Equal(t, "BTCUSDT", tickers[0].Symbol)
	assert.Equal(t, "65000.50", tickers[0].LastPrice)
	assert.Equal(t, "2.5", tickers[0].PriceChangePercent)
}

func TestClient_Ticker24h_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":-1003,"msg":"Too many requests"}`, http.StatusTeapot)
	}))
	defer server.Close()

	client := binance.NewClient(server.URL, 5*time.Second)

	_, err := client.Ticker24h(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 418")
}

func TestCryptoFeedAdapter_DropsUnparseableTickers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"65000.50","priceChangePercent":"2.5","quoteVolume":"2500000000.00"},
			{"symbol":"BROKEN","lastPrice":"n/a","priceChangePercent":"0","quoteVolume":"0"}
		]`))
	}))
	defer server.Close()

	adapter := binance.NewCryptoFeedAdapter(binance.NewClient(server.URL, 5*time.Second))

	entries, err := adapter.Ticker24h(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "BTCUSDT", entries[0].Symbol)
	assert.Equal(t, 65000.50, entries[0].LastPrice)
	assert.Equal(t, 2.5, entries[0].ChangePercent)
	assert.Equal(t, 2_500_000_000.0, entries[0].QuoteVolume)
}
