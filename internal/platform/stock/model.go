package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is a holding in the user's investment portfolio: a quantity of
// shares bought at a purchase price in some currency.
type Stock struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Ticker        string
	CompanyName   string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  time.Time
	CurrencyID    uuid.UUID

	// CurrencyCode is populated by read queries joining the currency.
	CurrencyCode string
}

// TotalInvestment returns quantity times purchase price.
func (s *Stock) TotalInvestment() decimal.Decimal {
	return s.Quantity.Mul(s.PurchasePrice)
}

// ValidateCreate validates fields required to record a holding.
func (s *Stock) ValidateCreate() error {
	if s.Ticker == "" {
		return ErrEmptyTicker
	}
	if !s.Quantity.IsPositive() {
		return ErrNonPositiveQuantity
	}
	if !s.PurchasePrice.IsPositive() {
		return ErrNonPositivePrice
	}
	if s.CurrencyID == uuid.Nil {
		return ErrCurrencyRequired
	}
	return nil
}

// PortfolioSummary aggregates the user's holdings.
type PortfolioSummary struct {
	TotalInvestment decimal.Decimal            `json:"total_investment"`
	StocksCount     int                        `json:"stocks_count"`
	ByCurrency      map[string]decimal.Decimal `json:"by_currency"`
}
