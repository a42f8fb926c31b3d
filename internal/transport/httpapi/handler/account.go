package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/account"
)

// AccountServiceInterface defines the interface for account operations
type AccountServiceInterface interface {
	Create(ctx context.Context, a *account.Account, userID uuid.UUID) (*account.Account, error)
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*account.Account, error)
	List(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	Update(ctx context.Context, a *account.Account, userID uuid.UUID) (*account.Account, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	TotalBalance(ctx context.Context, userID uuid.UUID) (*account.BalanceSummary, error)
}

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// AccountRequest represents the account create/update request body
type AccountRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	CurrencyID    string `json:"currency_id"`
	Balance       string `json:"balance"`
	BankConnected bool   `json:"bank_connected"`
}

// AccountResponse represents an account response
type AccountResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	CurrencyID    string `json:"currency_id"`
	CurrencyCode  string `json:"currency_code"`
	Balance       string `json:"balance"`
	BankConnected bool   `json:"bank_connected"`
	CreatedAt     string `json:"created_at"`
}

func accountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:            a.ID.String(),
		Name:          a.Name,
		Type:          string(a.Type),
		CurrencyID:    a.CurrencyID.String(),
		CurrencyCode:  a.CurrencyCode,
		Balance:       a.Balance.StringFixed(2),
		BankConnected: a.BankConnected,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

func (req *AccountRequest) toAccount() (*account.Account, error) {
	a := &account.Account{
		Name:          req.Name,
		Type:          account.Type(req.Type),
		BankConnected: req.BankConnected,
	}

	if req.CurrencyID != "" {
		currencyID, err := uuid.Parse(req.CurrencyID)
		if err != nil {
			return nil, errors.New("invalid currency id")
		}
		a.CurrencyID = currencyID
	}

	if req.Balance != "" {
		balance, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return nil, errors.New("invalid balance")
		}
		a.Balance = balance
	}

	return a, nil
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := req.toAccount()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.CreatedAt = time.Now()

	created, err := h.service.Create(r.Context(), a, userID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmptyName),
			errors.Is(err, account.ErrInvalidType),
			errors.Is(err, account.ErrCurrencyRequired):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to create account", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, accountResponse(created), http.StatusCreated)
}

// GetAccounts handles GET /accounts
func (h *AccountHandler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	accounts, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list accounts", http.StatusInternalServerError)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, accountResponse(a))
	}

	respondJSON(w, map[string]any{"accounts": responses}, http.StatusOK)
}

// GetAccount handles GET /accounts/{id}
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid account id", http.StatusBadRequest)
		return
	}

	a, err := h.service.GetByID(r.Context(), id, userID)
	if err != nil {
		respondAccountError(w, err, "failed to get account")
		return
	}

	respondJSON(w, accountResponse(a), http.StatusOK)
}

// UpdateAccount handles PUT /accounts/{id}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid account id", http.StatusBadRequest)
		return
	}

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	a, err := req.toAccount()
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.ID = id

	updated, err := h.service.Update(r.Context(), a, userID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmptyName),
			errors.Is(err, account.ErrInvalidType),
			errors.Is(err, account.ErrCurrencyRequired):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondAccountError(w, err, "failed to update account")
		}
		return
	}

	respondJSON(w, accountResponse(updated), http.StatusOK)
}

// DeleteAccount handles DELETE /accounts/{id}
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid account id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondAccountError(w, err, "failed to delete account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTotalBalance handles GET /accounts/total-balance
func (h *AccountHandler) GetTotalBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.TotalBalance(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to compute total balance", http.StatusInternalServerError)
		return
	}

	respondJSON(w, summary, http.StatusOK)
}

func respondAccountError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		respondError(w, "account not found", http.StatusNotFound)
	case errors.Is(err, account.ErrUnauthorizedAccess):
		respondError(w, "account does not belong to user", http.StatusForbidden)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
