package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/stock"
)

// StockServiceInterface defines the interface for stock operations
type StockServiceInterface interface {
	Create(ctx context.Context, st *stock.Stock, userID uuid.UUID) (*stock.Stock, error)
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*stock.Stock, error)
	List(ctx context.Context, userID uuid.UUID) ([]*stock.Stock, error)
	Update(ctx context.Context, st *stock.Stock, userID uuid.UUID) (*stock.Stock, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	PortfolioSummary(ctx context.Context, userID uuid.UUID) (*stock.PortfolioSummary, error)
}

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	service StockServiceInterface
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service StockServiceInterface) *StockHandler {
	return &StockHandler{service: service}
}

const purchaseDateLayout = "2006-01-02"

// StockRequest represents the stock create/update request body
type StockRequest struct {
	Ticker        string `json:"ticker"`
	CompanyName   string `json:"company_name"`
	Quantity      string `json:"quantity"`
	PurchasePrice string `json:"purchase_price"`
	PurchaseDate  string `json:"purchase_date"`
	CurrencyID    string `json:"currency_id"`
}

// StockResponse represents a stock response
type StockResponse struct {
	ID              string `json:"id"`
	Ticker          string `json:"ticker"`
	CompanyName     string `json:"company_name"`
	Quantity        string `json:"quantity"`
	PurchasePrice   string `json:"purchase_price"`
	PurchaseDate    string `json:"purchase_date"`
	CurrencyID      string `json:"currency_id"`
	CurrencyCode    string `json:"currency_code"`
	TotalInvestment string `json:"total_investment"`
}

func stockResponse(s *stock.Stock) StockResponse {
	return StockResponse{
		ID:              s.ID.String(),
		Ticker:          s.Ticker,
		CompanyName:     s.CompanyName,
		Quantity:        s.Quantity.String(),
		PurchasePrice:   s.PurchasePrice.StringFixed(2),
		PurchaseDate:    s.PurchaseDate.Format(purchaseDateLayout),
		CurrencyID:      s.CurrencyID.String(),
		CurrencyCode:    s.CurrencyCode,
		TotalInvestment: s.TotalInvestment().StringFixed(2),
	}
}

func (req *StockRequest) toStock() (*stock.Stock, error) {
	s := &stock.Stock{
		Ticker:      req.Ticker,
		CompanyName: req.CompanyName,
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		return nil, errors.New("invalid quantity")
	}
	s.Quantity = quantity

	price, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		return nil, errors.New("invalid purchase price")
	}
	s.PurchasePrice = price

	if req.PurchaseDate != "" {
		purchaseDate, err := time.Parse(purchaseDateLayout, req.PurchaseDate)
		if err != nil {
			return nil, errors.New("invalid purchase_date, expected YYYY-MM-DD")
		}
		s.PurchaseDate = purchaseDate
	} else {
		s.PurchaseDate = time.Now()
	}

	if req.CurrencyID != "" {
		currencyID, err := uuid.Parse(req.CurrencyID)
		if err != nil {
			return nil, errors.New("invalid currency id")
		}
		s.CurrencyID = currencyID
	}

	return s, nil
}

// CreateStock handles POST /stocks
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := req.toStock()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), s, userID)
	if err != nil {
		respondStockError(w, err, "failed to create stock")
		return
	}

	respondJSON(w, stockResponse(created), http.StatusCreated)
}

// GetStocks handles GET /stocks
func (h *StockHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stocks, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list stocks", http.StatusInternalServerError)
		return
	}

	responses := make([]StockResponse, 0, len(stocks))
	for _, s := range stocks {
		responses = append(responses, stockResponse(s))
	}

	respondJSON(w, map[string]any{"stocks": responses}, http.StatusOK)
}

// GetStock handles GET /stocks/{id}
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid stock id", http.StatusBadRequest)
		return
	}

	s, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		respondStockError(w, err, "failed to get stock")
		return
	}

	respondJSON(w, stockResponse(s), http.StatusOK)
}

// UpdateStock handles PUT /stocks/{id}
func (h *StockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid stock id", http.StatusBadRequest)
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := req.toStock()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.ID = id

	updated, err := h.service.Update(r.Context(), s, userID)
	if err != nil {
		respondStockError(w, err, "failed to update stock")
		return
	}

	respondJSON(w, stockResponse(updated), http.StatusOK)
}

// DeleteStock handles DELETE /stocks/{id}
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid stock id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondStockError(w, err, "failed to delete stock")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPortfolioSummary handles GET /stocks/portfolio-summary
func (h *StockHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.PortfolioSummary(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to compute portfolio summary", http.StatusInternalServerError)
		return
	}

	respondJSON(w, summary, http.StatusOK)
}

func respondStockError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, stock.ErrStockNotFound):
		respondError(w, "stock not found", http.StatusNotFound)
	case errors.Is(err, stock.ErrUnauthorizedAccess):
		respondError(w, "stock does not belong to user", http.StatusForbidden)
	case errors.Is(err, stock.ErrEmptyTicker),
		errors.Is(err, stock.ErrNonPositiveQuantity),
		errors.Is(err, stock.ErrNonPositivePrice),
		errors.Is(err, stock.ErrCurrencyRequired):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
