package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/budget"
)

// BudgetServiceInterface defines the interface for budget operations
type BudgetServiceInterface interface {
	Create(ctx context.Context, b *budget.Budget, userID uuid.UUID) (*budget.Budget, error)
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*budget.Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error)
	Active(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error)
	Update(ctx context.Context, b *budget.Budget, userID uuid.UUID) (*budget.Budget, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	service BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(service BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// budgetDateLayout is the wire format for budget start and end dates.
const budgetDateLayout = "2006-01-02"

// BudgetRequest represents the budget create/update request body
type BudgetRequest struct {
	Name       string  `json:"name"`
	Amount     string  `json:"amount"`
	Period     string  `json:"period"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date"`
	CategoryID *string `json:"category_id"`
}

// BudgetResponse represents a budget response
type BudgetResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Amount       string  `json:"amount"`
	Period       string  `json:"period"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
}

func budgetResponse(b *budget.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:           b.ID.String(),
		Name:         b.Name,
		Amount:       b.Amount.StringFixed(2),
		Period:       string(b.Period),
		StartDate:    b.StartDate.Format(budgetDateLayout),
		CategoryName: b.CategoryName,
	}
	if b.EndDate != nil {
		s := b.EndDate.Format(budgetDateLayout)
		resp.EndDate = &s
	}
	if b.CategoryID != nil {
		s := b.CategoryID.String()
		resp.CategoryID = &s
	}
	return resp
}

func (req *BudgetRequest) toBudget() (*budget.Budget, error) {
	b := &budget.Budget{
		Name:   req.Name,
		Period: budget.Period(req.Period),
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, errors.New("invalid amount")
	}
	b.Amount = amount

	if req.StartDate != "" {
		startDate, err := time.Parse(budgetDateLayout, req.StartDate)
		if err != nil {
			return nil, errors.New("invalid start_date, expected YYYY-MM-DD")
		}
		b.StartDate = startDate
	}

	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := time.Parse(budgetDateLayout, *req.EndDate)
		if err != nil {
			return nil, errors.New("invalid end_date, expected YYYY-MM-DD")
		}
		b.EndDate = &endDate
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category id")
		}
		b.CategoryID = &categoryID
	}

	return b, nil
}

// CreateBudget handles POST /budgets
func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	b, err := req.toBudget()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), b, userID)
	if err != nil {
		respondBudgetError(w, err, "failed to create budget")
		return
	}

	respondJSON(w, budgetResponse(created), http.StatusCreated)
}

// GetBudgets handles GET /budgets
func (h *BudgetHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list budgets", http.StatusInternalServerError)
		return
	}

	respondBudgetList(w, budgets)
}

// GetActiveBudgets handles GET /budgets/active
func (h *BudgetHandler) GetActiveBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	budgets, err := h.service.Active(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list budgets", http.StatusInternalServerError)
		return
	}

	respondBudgetList(w, budgets)
}

// GetBudget handles GET /budgets/{id}
func (h *BudgetHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid budget id", http.StatusBadRequest)
		return
	}

	b, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		respondBudgetError(w, err, "failed to get budget")
		return
	}

	respondJSON(w, budgetResponse(b), http.StatusOK)
}

// UpdateBudget handles PUT /budgets/{id}
func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid budget id", http.StatusBadRequest)
		return
	}

	var req BudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	b, err := req.toBudget()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.ID = id

	updated, err := h.service.Update(r.Context(), b, userID)
	if err != nil {
		respondBudgetError(w, err, "failed to update budget")
		return
	}

	respondJSON(w, budgetResponse(updated), http.StatusOK)
}

// DeleteBudget handles DELETE /budgets/{id}
func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid budget id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondBudgetError(w, err, "failed to delete budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondBudgetList(w http.ResponseWriter, budgets []*budget.Budget) {
	responses := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		responses = append(responses, budgetResponse(b))
	}

	respondJSON(w, map[string]any{"budgets": responses}, http.StatusOK)
}

func respondBudgetError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, budget.ErrBudgetNotFound):
		respondError(w, "budget not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrUnauthorizedAccess):
		respondError(w, "budget does not belong to user", http.StatusForbidden)
	case errors.Is(err, budget.ErrEmptyName),
		errors.Is(err, budget.ErrNonPositiveAmount),
		errors.Is(err, budget.ErrInvalidPeriod),
		errors.Is(err, budget.ErrStartDateRequired),
		errors.Is(err, budget.ErrEndBeforeStart):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
