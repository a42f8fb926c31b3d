package budget

import "errors"

var (
	ErrEmptyName          = errors.New("budget name is required")
	ErrNonPositiveAmount  = errors.New("budget amount must be greater than zero")
	ErrInvalidPeriod      = errors.New("unknown budget period")
	ErrStartDateRequired  = errors.New("budget start date is required")
	ErrEndBeforeStart     = errors.New("budget end date is before start date")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrUnauthorizedAccess = errors.New("budget does not belong to user")
)
