package stock

import "errors"

var (
	ErrEmptyTicker         = errors.New("stock ticker is required")
	ErrNonPositiveQuantity = errors.New("stock quantity must be greater than zero")
	ErrNonPositivePrice    = errors.New("purchase price must be greater than zero")
	ErrCurrencyRequired    = errors.New("stock currency is required")
	ErrStockNotFound       = errors.New("stock not found")
	ErrUnauthorizedAccess  = errors.New("stock does not belong to user")
)
