package market

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ekazakova/moneta/pkg/logger"
)

const (
	// DefaultCacheTTL keeps feed responses for 5 minutes.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultTopLimit is the number of tickers returned when the caller
	// does not ask for a specific count.
	DefaultTopLimit = 5

	// maxTopLimit caps the ticker listing size.
	maxTopLimit = 20

	cryptoKeyPrefix = "market:crypto:top:"
	stockKeyPrefix  = "market:stock:"
)

// leveragedTokenMarkers identify leveraged token pairs excluded from the
// top listing.
var leveragedTokenMarkers = []string{"DOWN", "UP", "BEAR", "BULL"}

// Service serves dashboard market data through a read-through cache.
type Service struct {
	crypto CryptoFeed
	stocks StockFeed
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a new market data service
func NewService(crypto CryptoFeed, stocks StockFeed, cache Cache, ttl time.Duration, log *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{
		crypto: crypto,
		stocks: stocks,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithField("component", "market"),
	}
}

// TopCryptos returns the top cryptocurrencies by 24-hour quote volume
// against USDT. Feed failures degrade to an empty listing rather than an
// error so the dashboard widget renders empty instead of breaking.
func (s *Service) TopCryptos(ctx context.Context, limit int) ([]CryptoTicker, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	key := fmt.Sprintf("%s%d", cryptoKeyPrefix, limit)

	var cached []CryptoTicker
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	tickers, err := s.crypto.Ticker24h(ctx)
	if err != nil {
		s.logger.Warn("crypto feed unavailable", "error", err)
		return []CryptoTicker{}, nil
	}

	pairs := make([]TickerEntry, 0, len(tickers))
	for _, t := range tickers {
		if !strings.HasSuffix(t.Symbol, "USDT") {
			continue
		}
		if isLeveragedToken(t.Symbol) {
			continue
		}
		pairs = append(pairs, t)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].QuoteVolume > pairs[j].QuoteVolume
	})
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}

	result := make([]CryptoTicker, 0, len(pairs))
	for _, p := range pairs {
		symbol := strings.TrimSuffix(p.Symbol, "USDT")
		result = append(result, CryptoTicker{
			Symbol:          symbol,
			Name:            cryptoName(symbol),
			Price:           p.LastPrice,
			Change24h:       p.ChangePercent,
			Volume24h:       p.QuoteVolume,
			PriceFormatted:  formatPrice(p.LastPrice),
			VolumeFormatted: formatVolume(p.QuoteVolume),
		})
	}

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.logger.Warn("failed to cache crypto listing", "error", err)
	}

	return result, nil
}

// StockQuote returns the current quote for a ticker symbol.
func (s *Service) StockQuote(ctx context.Context, ticker string) (*StockQuote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	key := stockKeyPrefix + ticker

	var cached StockQuote
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	quote, err := s.stocks.Quote(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", ticker, err)
	}

	result := &StockQuote{
		Ticker:         ticker,
		Price:          quote.Current,
		Change:         quote.Change,
		ChangePercent:  quote.PercentChange,
		PriceFormatted: formatPrice(quote.Current),
	}

	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.logger.Warn("failed to cache stock quote", "ticker", ticker, "error", err)
	}

	return result, nil
}

// isLeveragedToken reports whether a pair symbol is a leveraged token
func isLeveragedToken(symbol string) bool {
	for _, marker := range leveragedTokenMarkers {
		if strings.Contains(symbol, marker) {
			return true
		}
	}
	return false
}
