package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ekazakova/moneta/internal/platform/transaction"
)

// Entry is the read-only slice of a transaction the aggregator works with.
// Entries are always pre-filtered to a single user's ledger.
type Entry struct {
	Amount     decimal.Decimal
	Kind       transaction.Kind
	OccurredAt time.Time
	CategoryID *uuid.UUID
}

// signed returns the entry's signed contribution to a balance:
// +amount for income, -amount for expense, zero for transfers.
func (e Entry) signed() decimal.Decimal {
	switch e.Kind {
	case transaction.KindIncome:
		return e.Amount
	case transaction.KindExpense:
		return e.Amount.Neg()
	default:
		// Transfers move money between the user's own accounts and
		// net to zero at the ledger level.
		return decimal.Zero
	}
}

// CategoryRef is the category projection used for grouping.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
}

// BalanceHistory is a day-by-day running balance series. Labels and
// Balances are parallel: Labels[i] is the calendar day, Balances[i] the
// end-of-day cumulative balance rounded to 2 decimal places.
type BalanceHistory struct {
	Labels   []string
	Balances []float64
}

// CategoryComparison holds index-aligned income and expense totals per
// category name, sorted alphabetically. A category appears only if at
// least one of its totals is nonzero; the other total is zero-filled.
type CategoryComparison struct {
	Categories []string
	Expenses   []float64
	Incomes    []float64
}
