package tag

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyName          = errors.New("tag name is required")
	ErrTagNotFound        = errors.New("tag not found")
	ErrDuplicateTagName   = errors.New("tag with this name already exists")
	ErrUnauthorizedAccess = errors.New("tag does not belong to user")
)

// Tag is a user-defined label attached to transactions. Names are unique
// per user.
type Tag struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Color  string
}

// Validate validates the tag fields.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return ErrEmptyName
	}
	return nil
}
