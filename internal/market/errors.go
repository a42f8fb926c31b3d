package market

import "errors"

var (
	ErrEmptyTicker = errors.New("ticker symbol is required")
)
