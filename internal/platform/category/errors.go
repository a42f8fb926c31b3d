package category

import "errors"

var (
	ErrEmptyName        = errors.New("category name is required")
	ErrInvalidKind      = errors.New("category kind must be income or expense")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSystemCategory   = errors.New("system categories cannot be modified")
	ErrParentNotFound   = errors.New("parent category not found")
	ErrParentKindMismatch = errors.New("parent category must have the same kind")
)
