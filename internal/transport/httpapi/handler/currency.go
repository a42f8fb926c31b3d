package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ekazakova/moneta/internal/platform/currency"
)

// CurrencyServiceInterface defines the interface for currency operations
type CurrencyServiceInterface interface {
	Create(ctx context.Context, c *currency.Currency) (*currency.Currency, error)
	GetByID(ctx context.Context, id uuid.UUID) (*currency.Currency, error)
	List(ctx context.Context) ([]*currency.Currency, error)
	Update(ctx context.Context, c *currency.Currency) (*currency.Currency, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CurrencyHandler handles currency-related HTTP requests
type CurrencyHandler struct {
	service CurrencyServiceInterface
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(service CurrencyServiceInterface) *CurrencyHandler {
	return &CurrencyHandler{service: service}
}

// CurrencyRequest represents the currency create/update request body
type CurrencyRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CurrencyResponse represents a currency response
type CurrencyResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func currencyResponse(c *currency.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:     c.ID.String(),
		Code:   c.Code,
		Name:   c.Name,
		Symbol: c.Symbol,
	}
}

// CreateCurrency handles POST /currencies
func (h *CurrencyHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), &currency.Currency{
		Code:   req.Code,
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		switch {
		case errors.Is(err, currency.ErrDuplicateCode):
			respondError(w, "currency with this code already exists", http.StatusConflict)
		case errors.Is(err, currency.ErrInvalidCode), errors.Is(err, currency.ErrEmptyName):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to create currency", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, currencyResponse(created), http.StatusCreated)
}

// GetCurrencies handles GET /currencies
func (h *CurrencyHandler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, "failed to list currencies", http.StatusInternalServerError)
		return
	}

	responses := make([]CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		responses = append(responses, currencyResponse(c))
	}

	respondJSON(w, map[string]any{"currencies": responses}, http.StatusOK)
}

// GetCurrency handles GET /currencies/{id}
func (h *CurrencyHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid currency id", http.StatusBadRequest)
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, currency.ErrCurrencyNotFound) {
			respondError(w, "currency not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to get currency", http.StatusInternalServerError)
		return
	}

	respondJSON(w, currencyResponse(c), http.StatusOK)
}

// UpdateCurrency handles PUT /currencies/{id}
func (h *CurrencyHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid currency id", http.StatusBadRequest)
		return
	}

	var req CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), &currency.Currency{
		ID:     id,
		Code:   req.Code,
		Name:   req.Name,
		Symbol: req.Symbol,
	})
	if err != nil {
		switch {
		case errors.Is(err, currency.ErrCurrencyNotFound):
			respondError(w, "currency not found", http.StatusNotFound)
		case errors.Is(err, currency.ErrDuplicateCode):
			respondError(w, "currency with this code already exists", http.StatusConflict)
		case errors.Is(err, currency.ErrInvalidCode), errors.Is(err, currency.ErrEmptyName):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to update currency", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, currencyResponse(updated), http.StatusOK)
}

// DeleteCurrency handles DELETE /currencies/{id}
func (h *CurrencyHandler) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid currency id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, currency.ErrCurrencyNotFound):
			respondError(w, "currency not found", http.StatusNotFound)
		case errors.Is(err, currency.ErrCurrencyInUse):
			respondError(w, "currency is referenced by accounts", http.StatusConflict)
		default:
			respondError(w, "failed to delete currency", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
