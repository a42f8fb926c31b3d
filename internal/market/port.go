package market

import (
	"context"
	"time"
)

// CryptoFeed provides 24-hour exchange tickers.
type CryptoFeed interface {
	Ticker24h(ctx context.Context) ([]TickerEntry, error)
}

// StockFeed provides real-time stock quotes.
type StockFeed interface {
	Quote(ctx context.Context, symbol string) (*QuoteEntry, error)
}

// Cache is the read-through cache in front of the feeds.
type Cache interface {
	// Get retrieves a cached value into dest, reporting whether the key
	// was present
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
