package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ekazakova/moneta/internal/platform/tag"
)

// TagServiceInterface defines the interface for tag operations
type TagServiceInterface interface {
	Create(ctx context.Context, t *tag.Tag, userID uuid.UUID) (*tag.Tag, error)
	List(ctx context.Context, userID uuid.UUID) ([]*tag.Tag, error)
	Update(ctx context.Context, t *tag.Tag, userID uuid.UUID) (*tag.Tag, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	service TagServiceInterface
}

// NewTagHandler creates a new tag handler
func NewTagHandler(service TagServiceInterface) *TagHandler {
	return &TagHandler{service: service}
}

// TagRequest represents the tag create/update request body
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagResponse represents a tag response
type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func tagResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
	}
}

// CreateTag handles POST /tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), &tag.Tag{Name: req.Name, Color: req.Color}, userID)
	if err != nil {
		respondTagError(w, err, "failed to create tag")
		return
	}

	respondJSON(w, tagResponse(created), http.StatusCreated)
}

// GetTags handles GET /tags
func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tags, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondError(w, "failed to list tags", http.StatusInternalServerError)
		return
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, tagResponse(t))
	}

	respondJSON(w, map[string]any{"tags": responses}, http.StatusOK)
}

// UpdateTag handles PUT /tags/{id}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid tag id", http.StatusBadRequest)
		return
	}

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), &tag.Tag{ID: id, Name: req.Name, Color: req.Color}, userID)
	if err != nil {
		respondTagError(w, err, "failed to update tag")
		return
	}

	respondJSON(w, tagResponse(updated), http.StatusOK)
}

// DeleteTag handles DELETE /tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		respondError(w, "invalid tag id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		respondTagError(w, err, "failed to delete tag")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondTagError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, tag.ErrTagNotFound):
		respondError(w, "tag not found", http.StatusNotFound)
	case errors.Is(err, tag.ErrUnauthorizedAccess):
		respondError(w, "tag does not belong to user", http.StatusForbidden)
	case errors.Is(err, tag.ErrDuplicateTagName):
		respondError(w, "tag with this name already exists", http.StatusConflict)
	case errors.Is(err, tag.ErrEmptyName):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
