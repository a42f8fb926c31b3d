package currency

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

var (
	ErrInvalidCode      = errors.New("currency code must be 3 uppercase letters")
	ErrEmptyName        = errors.New("currency name is required")
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrDuplicateCode    = errors.New("currency with this code already exists")
	ErrCurrencyInUse    = errors.New("currency is referenced by accounts")
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO-4217 style currency used to denominate accounts.
type Currency struct {
	ID     uuid.UUID
	Code   string
	Name   string
	Symbol string
}

// Validate validates the currency fields.
func (c *Currency) Validate() error {
	if !codePattern.MatchString(c.Code) {
		return ErrInvalidCode
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}
