package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is the recurrence of a budget.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Valid reports whether the period is one of the known values.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a periodic spending limit, optionally bound to a category.
// An open-ended budget has no end date.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Period     Period
	StartDate  time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID

	// CategoryName is populated by read queries joining the category.
	CategoryName string
}

// ValidateCreate validates fields required to create a budget.
func (b *Budget) ValidateCreate() error {
	if b.Name == "" {
		return ErrEmptyName
	}
	if !b.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	if b.StartDate.IsZero() {
		return ErrStartDateRequired
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// ActiveOn reports whether the budget covers the given date.
func (b *Budget) ActiveOn(date time.Time) bool {
	if b.StartDate.After(date) {
		return false
	}
	return b.EndDate == nil || !b.EndDate.Before(date)
}
