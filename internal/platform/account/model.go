package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies an account.
type Type string

const (
	TypeCash       Type = "cash"
	TypeCard       Type = "card"
	TypeBank       Type = "bank"
	TypeSavings    Type = "savings"
	TypeInvestment Type = "investment"
)

// Valid reports whether the type is one of the known values.
func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeCard, TypeBank, TypeSavings, TypeInvestment:
		return true
	}
	return false
}

// Account is a currency-denominated money holding owned by one user.
type Account struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Type          Type
	CurrencyID    uuid.UUID
	Balance       decimal.Decimal
	BankConnected bool
	CreatedAt     time.Time

	// CurrencyCode is populated by read queries joining the currency.
	CurrencyCode string
}

// ValidateCreate validates fields required to create an account.
func (a *Account) ValidateCreate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	if a.CurrencyID == uuid.Nil {
		return ErrCurrencyRequired
	}
	return nil
}

// BalanceSummary aggregates a user's balances across all accounts.
type BalanceSummary struct {
	TotalBalance  decimal.Decimal            `json:"total_balance"`
	AccountsCount int                        `json:"accounts_count"`
	ByCurrency    map[string]decimal.Decimal `json:"by_currency"`
}
