package binance

import (
	"context"
	"strconv"

	"github.com/ekazakova/moneta/internal/market"
)

// CryptoFeedAdapter adapts the Binance client to the market.CryptoFeed port
type CryptoFeedAdapter struct {
	client *Client
}

// NewCryptoFeedAdapter creates a new adapter around a Binance client
func NewCryptoFeedAdapter(client *Client) *CryptoFeedAdapter {
	return &CryptoFeedAdapter{client: client}
}

// Ticker24h fetches the exchange tickers and converts the wire strings to
// numbers. Tickers with unparseable numbers are dropped.
func (a *CryptoFeedAdapter) Ticker24h(ctx context.Context) ([]market.TickerEntry, error) {
	tickers, err := a.client.Ticker24h(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]market.TickerEntry, 0, len(tickers))
	for _, t := range tickers {
		price, err := strconv.ParseFloat(t.LastPrice, 64)
		if err != nil {
			continue
		}
		change, err := strconv.ParseFloat(t.PriceChangePercent, 64)
		if err != nil {
			continue
		}
		volume, err := strconv.ParseFloat(t.QuoteVolume, 64)
		if err != nil {
			continue
		}

		entries = append(entries, market.TickerEntry{
			Symbol:        t.Symbol,
			LastPrice:     price,
			ChangePercent: change,
			QuoteVolume:   volume,
		})
	}

	return entries, nil
}
