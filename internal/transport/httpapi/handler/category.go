package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ekazakova/moneta/internal/platform/category"
)

// CategoryServiceInterface defines the interface for category operations
type CategoryServiceInterface interface {
	Create(ctx context.Context, c *category.Category) (*category.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	List(ctx context.Context, kind category.Kind) ([]*category.Category, error)
	Update(ctx context.Context, c *category.Category) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	service CategoryServiceInterface
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// CategoryRequest represents the category create/update request body
type CategoryRequest struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	ParentID *string `json:"parent_id"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
}

// CategoryResponse represents a category response
type CategoryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	ParentID *string `json:"parent_id,omitempty"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
	System   bool    `json:"is_system"`
}

func categoryResponse(c *category.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Kind:   string(c.Kind),
		Icon:   c.Icon,
		Color:  c.Color,
		System: c.System,
	}
	if c.ParentID != nil {
		s := c.ParentID.String()
		resp.ParentID = &s
	}
	return resp
}

func (req *CategoryRequest) toCategory() (*category.Category, error) {
	c := &category.Category{
		Name:  req.Name,
		Kind:  category.Kind(req.Kind),
		Icon:  req.Icon,
		Color: req.Color,
	}
	if req.ParentID != nil && *req.ParentID != "" {
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return nil, err
		}
		c.ParentID = &parentID
	}
	return c, nil
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := req.toCategory()
	if err != nil {
		respondError(w, "invalid parent category id", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrParentNotFound):
			respondError(w, "parent category not found", http.StatusBadRequest)
		case errors.Is(err, category.ErrParentKindMismatch):
			respondError(w, "parent category must have the same kind", http.StatusBadRequest)
		case errors.Is(err, category.ErrEmptyName), errors.Is(err, category.ErrInvalidKind):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to create category", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, categoryResponse(created), http.StatusCreated)
}

// GetCategories handles GET /categories with an optional kind filter
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	kind := category.Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		respondError(w, "kind must be income or expense", http.StatusBadRequest)
		return
	}

	categories, err := h.service.List(r.Context(), kind)
	if err != nil {
		respondError(w, "failed to list categories", http.StatusInternalServerError)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, categoryResponse(c))
	}

	respondJSON(w, map[string]any{"categories": responses}, http.StatusOK)
}

// GetCategory handles GET /categories/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			respondError(w, "category not found", http.StatusNotFound)
			return
		}
		respondError(w, "failed to get category", http.StatusInternalServerError)
		return
	}

	respondJSON(w, categoryResponse(c), http.StatusOK)
}

// UpdateCategory handles PUT /categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := req.toCategory()
	if err != nil {
		respondError(w, "invalid parent category id", http.StatusBadRequest)
		return
	}
	c.ID = id

	updated, err := h.service.Update(r.Context(), c)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			respondError(w, "category not found", http.StatusNotFound)
		case errors.Is(err, category.ErrSystemCategory):
			respondError(w, "system categories cannot be modified", http.StatusForbidden)
		case errors.Is(err, category.ErrParentNotFound):
			respondError(w, "parent category not found", http.StatusBadRequest)
		case errors.Is(err, category.ErrParentKindMismatch):
			respondError(w, "parent category must have the same kind", http.StatusBadRequest)
		case errors.Is(err, category.ErrEmptyName):
			respondError(w, err.Error(), http.StatusBadRequest)
		default:
			respondError(w, "failed to update category", http.StatusInternalServerError)
		}
		return
	}

	respondJSON(w, categoryResponse(updated), http.StatusOK)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid category id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			respondError(w, "category not found", http.StatusNotFound)
		case errors.Is(err, category.ErrSystemCategory):
			respondError(w, "system categories cannot be modified", http.StatusForbidden)
		default:
			respondError(w, "failed to delete category", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
