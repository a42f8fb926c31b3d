package category

import (
	"github.com/google/uuid"
)

// Kind distinguishes income categories from expense categories.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Category groups transactions for budgeting and charting. Categories are
// shared across users; System marks the built-in set that cannot be edited.
type Category struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	ParentID *uuid.UUID
	Icon     string
	Color    string
	System   bool
}

// ValidateCreate validates fields required to create a category.
func (c *Category) ValidateCreate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
