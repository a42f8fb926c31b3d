package finnhub

import (
	"context"

	"github.com/ekazakova/moneta/internal/market"
)

// StockFeedAdapter adapts the Finnhub client to the market.StockFeed port
type StockFeedAdapter struct {
	client *Client
}

// NewStockFeedAdapter creates a new adapter around a Finnhub client
func NewStockFeedAdapter(client *Client) *StockFeedAdapter {
	return &StockFeedAdapter{client: client}
}

// Quote fetches the current quote for a symbol
func (a *StockFeedAdapter) Quote(ctx context.Context, symbol string) (*market.QuoteEntry, error) {
	q, err := a.client.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &market.QuoteEntry{
		Current:       q.Current,
		Change:        q.Change,
		PercentChange: q.PercentChange,
	}, nil
}
