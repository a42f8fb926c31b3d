package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a transaction.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense || k == KindTransfer
}

// Transaction is a single ledger record. It belongs to exactly one account
// and, transitively, to that account's owner.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Kind        Kind
	OccurredAt  time.Time
	Description string
	Recurring   bool
	TagIDs      []uuid.UUID

	// Read-side fields populated by list queries.
	AccountName  string
	CategoryName string
	CurrencyCode string
}

// ValidateCreate validates fields required to record a transaction.
func (t *Transaction) ValidateCreate() error {
	if t.AccountID == uuid.Nil {
		return ErrAccountRequired
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !t.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if t.Kind == KindTransfer && t.CategoryID != nil {
		return ErrTransferWithCategory
	}
	return nil
}

// Filter narrows a transaction listing.
type Filter struct {
	Kind       Kind
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Limit      int
	Offset     int
}

// Statistics summarizes a user's ledger activity over a trailing window.
type Statistics struct {
	PeriodDays   int             `json:"period_days"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
	Count        int             `json:"transactions_count"`
}
