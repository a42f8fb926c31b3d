package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	recentLimit = 10
	searchLimit = 20

	// duplicatePrefix marks copies made from an existing transaction.
	duplicatePrefix = "Copy of "
)

// Service provides business logic for transaction operations
type Service struct {
	repo       Repository
	accounts   AccountSource
	categories CategorySource
	now        func() time.Time
}

// NewService creates a new transaction service
func NewService(repo Repository, accounts AccountSource, categories CategorySource) *Service {
	return &Service{
		repo:       repo,
		accounts:   accounts,
		categories: categories,
		now:        time.Now,
	}
}

// Create records a new transaction on one of the user's accounts
func (s *Service) Create(ctx context.Context, t *Transaction, userID uuid.UUID) (*Transaction, error) {
	if err := t.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := s.authorizeAccount(ctx, t.AccountID, userID); err != nil {
		return nil, err
	}

	if err := s.validateCategory(ctx, t); err != nil {
		return nil, err
	}

	t.ID = uuid.New()
	if t.OccurredAt.IsZero() {
		t.OccurredAt = s.now()
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return t, nil
}

// GetByID retrieves a transaction and verifies ownership
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeAccount(ctx, t.AccountID, userID); err != nil {
		return nil, err
	}

	return t, nil
}

// List retrieves the user's transactions, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	txs, err := s.repo.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// Recent retrieves the user's 10 most recent transactions
func (s *Service) Recent(ctx context.Context, userID uuid.UUID) ([]*Transaction, error) {
	return s.List(ctx, userID, Filter{Limit: recentLimit})
}

// Update updates a transaction the user owns
func (s *Service) Update(ctx context.Context, t *Transaction, userID uuid.UUID) (*Transaction, error) {
	if err := t.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccount(ctx, existing.AccountID, userID); err != nil {
		return nil, err
	}

	// Moving a transaction to another account is allowed, but only
	// between the user's own accounts.
	if t.AccountID != existing.AccountID {
		if err := s.authorizeAccount(ctx, t.AccountID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.validateCategory(ctx, t); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return t, nil
}

// Delete deletes a transaction the user owns
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	owner, err := s.repo.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrUnauthorizedAccess
	}

	return s.repo.Delete(ctx, id)
}

// Duplicate copies an existing transaction. The copy keeps the account,
// category, amount, kind and tags, gets a fresh timestamp and a marked
// description.
func (s *Service) Duplicate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Transaction, error) {
	src, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	copyTx := &Transaction{
		ID:          uuid.New(),
		AccountID:   src.AccountID,
		CategoryID:  src.CategoryID,
		Amount:      src.Amount,
		Kind:        src.Kind,
		OccurredAt:  s.now(),
		Description: duplicatePrefix + src.Description,
		Recurring:   src.Recurring,
		TagIDs:      append([]uuid.UUID(nil), src.TagIDs...),
	}

	if err := s.repo.Create(ctx, copyTx); err != nil {
		return nil, fmt.Errorf("failed to duplicate transaction: %w", err)
	}

	return copyTx, nil
}

// Statistics summarizes the user's ledger over the trailing days window
func (s *Service) Statistics(ctx context.Context, userID uuid.UUID, days int) (*Statistics, error) {
	since := s.now().AddDate(0, 0, -days)

	income, err := s.repo.SumByKindSince(ctx, userID, KindIncome, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}

	expense, err := s.repo.SumByKindSince(ctx, userID, KindExpense, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	count, err := s.repo.CountSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	return &Statistics{
		PeriodDays:   days,
		TotalIncome:  income,
		TotalExpense: expense,
		NetIncome:    income.Sub(expense),
		Count:        count,
	}, nil
}

// Search finds the user's transactions matching the query in the
// description, category name or account name
func (s *Service) Search(ctx context.Context, userID uuid.UUID, query string) ([]*Transaction, error) {
	if query == "" {
		return []*Transaction{}, nil
	}

	txs, err := s.repo.Search(ctx, userID, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}

	return txs, nil
}

// authorizeAccount verifies the account belongs to the user
func (s *Service) authorizeAccount(ctx context.Context, accountID, userID uuid.UUID) error {
	owner, err := s.accounts.OwnerOf(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to resolve account owner: %w", err)
	}
	if owner != userID {
		return ErrUnauthorizedAccess
	}
	return nil
}

// validateCategory checks that the category, when set, matches the
// transaction kind
func (s *Service) validateCategory(ctx context.Context, t *Transaction) error {
	if t.CategoryID == nil {
		return nil
	}

	cat, err := s.categories.GetByID(ctx, *t.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to load category: %w", err)
	}

	if string(cat.Kind) != string(t.Kind) {
		return ErrCategoryKindMismatch
	}

	return nil
}
