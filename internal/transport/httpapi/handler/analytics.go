package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ekazakova/moneta/internal/analytics"
)

// AnalyticsServiceInterface defines the interface for chart aggregation
type AnalyticsServiceInterface interface {
	Config() analytics.Config
	BalanceHistory(ctx context.Context, userID uuid.UUID, windowDays int) (*analytics.BalanceHistory, error)
	CategoryComparison(ctx context.Context, userID uuid.UUID, win analytics.Window) (*analytics.CategoryComparison, error)
}

// AnalyticsHandler handles chart data HTTP requests. Unlike the CRUD
// handlers it wraps every payload in the success/error envelope, so chart
// clients can branch on a single flag.
type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// BalanceHistoryData is the balance-history chart payload. The series
// travels under "data", matching what the chart client binds to.
type BalanceHistoryData struct {
	Labels   []string  `json:"labels"`
	Balances []float64 `json:"data"`
}

// CategoryComparisonData is the category-comparison chart payload. Category
// names are the chart labels.
type CategoryComparisonData struct {
	Categories []string  `json:"labels"`
	Expenses   []float64 `json:"expenses"`
	Incomes    []float64 `json:"incomes"`
}

// GetBalanceHistory handles GET /analytics/balance-history
//
// The period selector accepts the recognized day counts; anything else,
// including "all", falls back to the default window.
func (h *AnalyticsHandler) GetBalanceHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondFailure(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	days := h.service.Config().ResolveDays(r.URL.Query().Get("days"))

	history, err := h.service.BalanceHistory(r.Context(), userID, days)
	if err != nil {
		respondFailure(w, "failed to compute balance history", http.StatusInternalServerError)
		return
	}

	respondSuccess(w, BalanceHistoryData{
		Labels:   history.Labels,
		Balances: history.Balances,
	}, http.StatusOK)
}

// GetCategoryComparison handles GET /analytics/comparison-data
//
// The period selector additionally accepts "all" for the all-time window.
func (h *AnalyticsHandler) GetCategoryComparison(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondFailure(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	win := h.service.Config().ResolveWindow(r.URL.Query().Get("days"))

	comparison, err := h.service.CategoryComparison(r.Context(), userID, win)
	if err != nil {
		respondFailure(w, "failed to compute category comparison", http.StatusInternalServerError)
		return
	}

	respondSuccess(w, CategoryComparisonData{
		Categories: comparison.Categories,
		Expenses:   comparison.Expenses,
		Incomes:    comparison.Incomes,
	}, http.StatusOK)
}
