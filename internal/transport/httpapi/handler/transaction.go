package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/account"
	"github.com/ekazakova/moneta/internal/platform/transaction"
)

// TransactionServiceInterface defines the interface for transaction operations
type TransactionServiceInterface interface {
	Create(ctx context.Context, t *transaction.Transaction, userID uuid.UUID) (*transaction.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error)
	Recent(ctx context.Context, userID uuid.UUID) ([]*transaction.Transaction, error)
	Update(ctx context.Context, t *transaction.Transaction, userID uuid.UUID) (*transaction.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*transaction.Transaction, error)
	Statistics(ctx context.Context, userID uuid.UUID, days int) (*transaction.Statistics, error)
	Search(ctx context.Context, userID uuid.UUID, query string) ([]*transaction.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	service TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// TransactionRequest represents the transaction create/update request body
type TransactionRequest struct {
	AccountID   string   `json:"account_id"`
	CategoryID  *string  `json:"category_id"`
	Amount      string   `json:"amount"`
	Kind        string   `json:"kind"`
	OccurredAt  string   `json:"occurred_at"`
	Description string   `json:"description"`
	Recurring   bool     `json:"is_recurring"`
	TagIDs      []string `json:"tag_ids"`
}

// TransactionResponse represents a transaction response
type TransactionResponse struct {
	ID           string   `json:"id"`
	AccountID    string   `json:"account_id"`
	AccountName  string   `json:"account_name"`
	CategoryID   *string  `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Amount       string   `json:"amount"`
	Kind         string   `json:"kind"`
	CurrencyCode string   `json:"currency_code"`
	OccurredAt   string   `json:"occurred_at"`
	Description  string   `json:"description"`
	Recurring    bool     `json:"is_recurring"`
	TagIDs       []string `json:"tag_ids"`
}

func transactionResponse(t *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           t.ID.String(),
		AccountID:    t.AccountID.String(),
		AccountName:  t.AccountName,
		CategoryName: t.CategoryName,
		Amount:       t.Amount.StringFixed(2),
		Kind:         string(t.Kind),
		CurrencyCode: t.CurrencyCode,
		OccurredAt:   t.OccurredAt.Format(time.RFC3339),
		Description:  t.Description,
		Recurring:    t.Recurring,
		TagIDs:       make([]string, 0, len(t.TagIDs)),
	}
	if t.CategoryID != nil {
		s := t.CategoryID.String()
		resp.CategoryID = &s
	}
	for _, tagID := range t.TagIDs {
		resp.TagIDs = append(resp.TagIDs, tagID.String())
	}
	return resp
}

func (req *TransactionRequest) toTransaction() (*transaction.Transaction, error) {
	t := &transaction.Transaction{
		Kind:        transaction.Kind(req.Kind),
		Description: req.Description,
		Recurring:   req.Recurring,
	}

	if req.AccountID != "" {
		accountID, err := uuid.Parse(req.AccountID)
		if err != nil {
			return nil, errors.New("invalid account id")
		}
		t.AccountID = accountID
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category id")
		}
		t.CategoryID = &categoryID
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, errors.New("invalid amount")
	}
	t.Amount = amount

	if req.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return nil, errors.New("invalid occurred_at, expected RFC 3339")
		}
		t.OccurredAt = occurredAt
	} else {
		t.OccurredAt = time.Now()
	}

	for _, raw := range req.TagIDs {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("invalid tag id")
		}
		t.TagIDs = append(t.TagIDs, tagID)
	}

	return t, nil
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := req.toTransaction()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), t, userID)
	if err != nil {
		respondTransactionError(w, err, "failed to create transaction")
		return
	}

	respondJSON(w, transactionResponse(created), http.StatusCreated)
}

// GetTransactions handles GET /transactions with optional filters
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseTransactionFilter(r)
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidKind) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	respondTransactionList(w, transactions)
}

// GetRecentTransactions handles GET /transactions/recent
func (h *TransactionHandler) GetRecentTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	transactions, err := h.service.Recent(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list transactions", http.StatusInternalServerError)
		return
	}

	respondTransactionList(w, transactions)
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	t, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		respondTransactionError(w, err, "failed to get transaction")
		return
	}

	respondJSON(w, transactionResponse(t), http.StatusOK)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	t, err := req.toTransaction()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	t.ID = id

	updated, err := h.service.Update(r.Context(), t, userID)
	if err != nil {
		respondTransactionError(w, err, "failed to update transaction")
		return
	}

	respondJSON(w, transactionResponse(updated), http.StatusOK)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondTransactionError(w, err, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DuplicateTransaction handles POST /transactions/{id}/duplicate
func (h *TransactionHandler) DuplicateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	duplicated, err := h.service.Duplicate(r.Context(), id, userID)
	if err != nil {
		respondTransactionError(w, err, "failed to duplicate transaction")
		return
	}

	respondJSON(w, transactionResponse(duplicated), http.StatusCreated)
}

// GetStatistics handles GET /transactions/statistics
func (h *TransactionHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	days := 30
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, "period must be a positive number of days", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	stats, err := h.service.Statistics(r.Context(), userID, days)
	if err != nil {
		respondError(w, "failed to compute statistics", http.StatusInternalServerError)
		return
	}

	respondJSON(w, stats, http.StatusOK)
}

// SearchTransactions handles GET /transactions/search
func (h *TransactionHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	transactions, err := h.service.Search(r.Context(), userID, query)
	if err != nil {
		respondError(w, "failed to search transactions", http.StatusInternalServerError)
		return
	}

	respondTransactionList(w, transactions)
}

func respondTransactionList(w http.ResponseWriter, transactions []*transaction.Transaction) {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, transactionResponse(t))
	}

	respondJSON(w, map[string]any{"transactions": responses}, http.StatusOK)
}

func parseTransactionFilter(r *http.Request) (transaction.Filter, error) {
	var filter transaction.Filter
	q := r.URL.Query()

	if raw := q.Get("kind"); raw != "" {
		kind := transaction.Kind(raw)
		if !kind.Valid() {
			return filter, errors.New("kind must be income, expense or transfer")
		}
		filter.Kind = kind
	}
	if raw := q.Get("account_id"); raw != "" {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid account id")
		}
		filter.AccountID = &accountID
	}
	if raw := q.Get("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("invalid category id")
		}
		filter.CategoryID = &categoryID
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

func respondTransactionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound):
		respondError(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrUnauthorizedAccess),
		errors.Is(err, account.ErrUnauthorizedAccess):
		respondError(w, "transaction does not belong to user", http.StatusForbidden)
	case errors.Is(err, account.ErrAccountNotFound):
		respondError(w, "account not found", http.StatusBadRequest)
	case errors.Is(err, transaction.ErrAccountRequired),
		errors.Is(err, transaction.ErrInvalidKind),
		errors.Is(err, transaction.ErrNonPositiveAmount),
		errors.Is(err, transaction.ErrTransferWithCategory),
		errors.Is(err, transaction.ErrCategoryKindMismatch):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
