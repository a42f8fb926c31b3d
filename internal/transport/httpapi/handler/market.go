package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ekazakova/moneta/internal/market"
)

// MarketServiceInterface defines the interface for market data operations
type MarketServiceInterface interface {
	TopCryptos(ctx context.Context, limit int) ([]market.CryptoTicker, error)
	StockQuote(ctx context.Context, ticker string) (*market.StockQuote, error)
}

// MarketHandler handles market data HTTP requests. Payloads use the
// success/error envelope like the analytics endpoints.
type MarketHandler struct {
	service MarketServiceInterface
}

// NewMarketHandler creates a new market handler
func NewMarketHandler(service MarketServiceInterface) *MarketHandler {
	return &MarketHandler{service: service}
}

// GetTopCryptos handles GET /market/crypto
func (h *MarketHandler) GetTopCryptos(w http.ResponseWriter, r *http.Request) {
	limit := market.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondFailure(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	tickers, err := h.service.TopCryptos(r.Context(), limit)
	if err != nil {
		respondFailure(w, "failed to fetch crypto prices", http.StatusInternalServerError)
		return
	}

	respondSuccess(w, map[string]any{"cryptos": tickers}, http.StatusOK)
}

// GetStockQuote handles GET /market/stock
func (h *MarketHandler) GetStockQuote(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(r.URL.Query().Get("ticker"))

	quote, err := h.service.StockQuote(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, market.ErrEmptyTicker) {
			respondFailure(w, "ticker is required", http.StatusBadRequest)
			return
		}
		respondFailure(w, "failed to fetch stock quote", http.StatusBadGateway)
		return
	}

	respondSuccess(w, quote, http.StatusOK)
}
