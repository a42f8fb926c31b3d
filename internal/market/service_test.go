package market

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/pkg/logger"
)

type mockCryptoFeed struct {
	tickers []TickerEntry
	err     error
	calls   int
}

func (m *mockCryptoFeed) Ticker24h(_ context.Context) ([]TickerEntry, error) {
	m.calls++
	return m.tickers, m.err
}

type mockStockFeed struct {
	quote *QuoteEntry
	err   error
	calls int
}

func (m *mockStockFeed) Quote(_ context.Context, _ string) (*QuoteEntry, error) {
	m.calls++
	return m.quote, m.err
}

// memCache round-trips values through JSON the way the redis cache does.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func newTestService(crypto CryptoFeed, stocks StockFeed, cache Cache) *Service {
	return NewService(crypto, stocks, cache, time.Minute, logger.NewDefault("test"))
}

func TestService_TopCryptos(t *testing.T) {
	feed := &mockCryptoFeed{tickers: []TickerEntry{
		{Symbol: "ETHUSDT", LastPrice: 3500, ChangePercent: -1.2, QuoteVolume: 900_000_000},
		{Symbol: "BTCUSDT", LastPrice: 65000.50, ChangePercent: 2.5, QuoteVolume: 2_500_000_000},
		{Symbol: "SOLUSDT", LastPrice: 140, ChangePercent: 4.1, QuoteVolume: 400_000_000},
		{Symbol: "BTCEUR", LastPrice: 60000, QuoteVolume: 3_000_000_000},
		{Symbol: "BTCDOWNUSDT", LastPrice: 0.003, QuoteVolume: 5_000_000_000},
		{Symbol: "ETHBULLUSDT", LastPrice: 0.01, QuoteVolume: 4_000_000_000},
	}}
	svc := newTestService(feed, &mockStockFeed{}, newMemCache())

	result, err := svc.TopCryptos(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Non-USDT pairs and leveraged tokens are excluded even with higher volume
	assert.Equal(t, "BTC", result[0].Symbol)
	assert.Equal(t, "Bitcoin", result[0].Name)
	assert.Equal(t, "ETH", result[1].Symbol)

	assert.Equal(t, "$65,000.50", result[0].PriceFormatted)
	assert.Equal(t, "$2.50B", result[0].VolumeFormatted)
}

func TestService_TopCryptos_LimitBounds(t *testing.T) {
	tickers := make([]TickerEntry, 0, 30)
	for i := 0; i < 30; i++ {
		tickers = append(tickers, TickerEntry{
			Symbol:      string(rune('A'+i)) + "USDT",
			LastPrice:   1,
			QuoteVolume: float64(30 - i),
		})
	}
	feed := &mockCryptoFeed{tickers: tickers}
	svc := newTestService(feed, &mockStockFeed{}, newMemCache())

	result, err := svc.TopCryptos(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, result, DefaultTopLimit)

	result, err = svc.TopCryptos(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, result, maxTopLimit)
}

func TestService_TopCryptos_FeedFailureDegrades(t *testing.T) {
	feed := &mockCryptoFeed{err: errors.New("exchange unreachable")}
	svc := newTestService(feed, &mockStockFeed{}, newMemCache())

	result, err := svc.TopCryptos(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestService_TopCryptos_CacheHit(t *testing.T) {
	feed := &mockCryptoFeed{tickers: []TickerEntry{
		{Symbol: "BTCUSDT", LastPrice: 65000, QuoteVolume: 1_000_000_000},
	}}
	svc := newTestService(feed, &mockStockFeed{}, newMemCache())

	_, err := svc.TopCryptos(context.Background(), 5)
	require.NoError(t, err)

	result, err := svc.TopCryptos(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "BTC", result[0].Symbol)
	assert.Equal(t, 1, feed.calls)
}

func TestService_StockQuote(t *testing.T) {
	feed := &mockStockFeed{quote: &QuoteEntry{Current: 185.5, Change: 2.3, PercentChange: 1.26}}
	svc := newTestService(&mockCryptoFeed{}, feed, newMemCache())

	quote, err := svc.StockQuote(context.Background(), " aapl ")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Ticker)
	assert.Equal(t, 185.5, quote.Price)
	assert.Equal(t, "$185.50", quote.PriceFormatted)
}

func TestService_StockQuote_EmptyTicker(t *testing.T) {
	svc := newTestService(&mockCryptoFeed{}, &mockStockFeed{}, newMemCache())

	_, err := svc.StockQuote(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTicker)
}

func TestService_StockQuote_FeedError(t *testing.T) {
	feedErr := errors.New("rate limited")
	feed := &mockStockFeed{err: feedErr}
	svc := newTestService(&mockCryptoFeed{}, feed, newMemCache())

	_, err := svc.StockQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, feedErr)
}

func TestService_StockQuote_CacheHit(t *testing.T) {
	feed := &mockStockFeed{quote: &QuoteEntry{Current: 185.5}}
	svc := newTestService(&mockCryptoFeed{}, feed, newMemCache())

	_, err := svc.StockQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	quote, err := svc.StockQuote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 185.5, quote.Price)
	assert.Equal(t, 1, feed.calls)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{65000.5, "$65,000.50"},
		{1234567.89, "$1,234,567.89"},
		{185.5, "$185.50"},
		{1, "$1.00"},
		{0.1234, "$0.1234"},
		{0.00001234, "$0.00001234"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPrice(tt.price))
	}
}

func TestFormatVolume(t *testing.T) {
	assert.Equal(t, "$2.50B", formatVolume(2_500_000_000))
	assert.Equal(t, "$400.00M", formatVolume(400_000_000))
	assert.Equal(t, "$12.30K", formatVolume(12_300))
}
