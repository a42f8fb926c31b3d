package account

import "errors"

var (
	ErrEmptyName          = errors.New("account name is required")
	ErrInvalidType        = errors.New("unknown account type")
	ErrCurrencyRequired   = errors.New("account currency is required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorizedAccess = errors.New("account does not belong to user")
)
