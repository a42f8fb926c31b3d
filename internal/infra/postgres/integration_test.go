//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekazakova/moneta/internal/infra/postgres"
	"github.com/ekazakova/moneta/internal/platform/account"
	"github.com/ekazakova/moneta/internal/platform/budget"
	"github.com/ekazakova/moneta/internal/platform/category"
	"github.com/ekazakova/moneta/internal/platform/currency"
	"github.com/ekazakova/moneta/internal/platform/tag"
	"github.com/ekazakova/moneta/internal/platform/transaction"
	"github.com/ekazakova/moneta/internal/platform/user"
	"github.com/ekazakova/moneta/testutil/testdb"
)

type repos struct {
	users        *postgres.UserRepository
	currencies   *postgres.CurrencyRepository
	categories   *postgres.CategoryRepository
	accounts     *postgres.AccountRepository
	tags         *postgres.TagRepository
	transactions *postgres.TransactionRepository
	budgets      *postgres.BudgetRepository
}

func setup(t *testing.T) (context.Context, *testdb.TestDB, *repos) {
	t.Helper()
	ctx := context.Background()

	db, err := testdb.NewTestDB(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(ctx) })

	return ctx, db, &repos{
		users:        postgres.NewUserRepository(db.Pool),
		currencies:   postgres.NewCurrencyRepository(db.Pool),
		categories:   postgres.NewCategoryRepository(db.Pool),
		accounts:     postgres.NewAccountRepository(db.Pool),
		tags:         postgres.NewTagRepository(db.Pool),
		transactions: postgres.NewTransactionRepository(db.Pool),
		budgets:      postgres.NewBudgetRepository(db.Pool),
	}
}

func seedUser(t *testing.T, ctx context.Context, r *repos, email string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplacehold",
		FirstName:    "Anna",
		LastName:     "Petrova",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, r.users.Create(ctx, u))
	return u
}

func seedCurrency(t *testing.T, ctx context.Context, r *repos, code string) *currency.Currency {
	t.Helper()
	c := &currency.Currency{ID: uuid.New(), Code: code, Name: code, Symbol: "$"}
	require.NoError(t, r.currencies.Create(ctx, c))
	return c
}

func seedAccount(t *testing.T, ctx context.Context, r *repos, userID, currencyID uuid.UUID) *account.Account {
	t.Helper()
	a := &account.Account{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       "Main",
		Type:       account.TypeCash,
		CurrencyID: currencyID,
		Balance:    decimal.NewFromInt(1000),
	}
	require.NoError(t, r.accounts.Create(ctx, a))
	return a
}

func TestUserRepository(t *testing.T) {
	ctx, _, r := setup(t)

	u := seedUser(t, ctx, r, "anna@example.com")

	t.Run("get by email", func(t *testing.T) {
		got, err := r.users.GetByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, "Anna", got.FirstName)
		assert.Nil(t, got.LastLoginAt)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &user.User{ID: uuid.New(), Email: "anna@example.com", PasswordHash: "x"}
		err := r.users.Create(ctx, dup)
		assert.ErrorIs(t, err, user.ErrUserAlreadyExists)
	})

	t.Run("update persists last login", func(t *testing.T) {
		u.UpdateLastLogin()
		require.NoError(t, r.users.Update(ctx, u))

		got, err := r.users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := r.users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestCurrencyRepository_DeleteInUse(t *testing.T) {
	ctx, _, r := setup(t)

	u := seedUser(t, ctx, r, "anna@example.com")
	cur := seedCurrency(t, ctx, r, "USD")
	seedAccount(t, ctx, r, u.ID, cur.ID)

	err := r.currencies.Delete(ctx, cur.ID)
	assert.ErrorIs(t, err, currency.ErrCurrencyInUse)
}

func TestTransactionRepository(t *testing.T) {
	ctx, _, r := setup(t)

	u := seedUser(t, ctx, r, "anna@example.com")
	cur := seedCurrency(t, ctx, r, "USD")
	acct := seedAccount(t, ctx, r, u.ID, cur.ID)

	food := &category.Category{ID: uuid.New(), Name: "Food", Kind: category.KindExpense}
	require.NoError(t, r.categories.Create(ctx, food))

	groceriesTag := &tag.Tag{ID: uuid.New(), UserID: u.ID, Name: "groceries", Color: "#00ff00"}
	require.NoError(t, r.tags.Create(ctx, groceriesTag))

	tx := &transaction.Transaction{
		ID:          uuid.New(),
		AccountID:   acct.ID,
		CategoryID:  &food.ID,
		Amount:      decimal.RequireFromString("42.50"),
		Kind:        transaction.KindExpense,
		OccurredAt:  time.Now().Add(-24 * time.Hour),
		Description: "weekly shop",
		TagIDs:      []uuid.UUID{groceriesTag.ID},
	}
	require.NoError(t, r.transactions.Create(ctx, tx))

	t.Run("get with joined read fields", func(t *testing.T) {
		got, err := r.transactions.GetByID(ctx, tx.ID)
		require.NoError(t, err)

		assert.True(t, got.Amount.Equal(decimal.RequireFromString("42.50")))
		assert.Equal(t, "Main", got.AccountName)
		assert.Equal(t, "Food", got.CategoryName)
		assert.Equal(t, "USD", got.CurrencyCode)
		assert.Equal(t, []uuid.UUID{groceriesTag.ID}, got.TagIDs)
	})

	t.Run("owner resolution", func(t *testing.T) {
		owner, err := r.transactions.OwnerOf(ctx, tx.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, owner)
	})

	t.Run("list filtered by kind", func(t *testing.T) {
		list, err := r.transactions.ListByUser(ctx, u.ID, transaction.Filter{Kind: transaction.KindExpense})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		list, err = r.transactions.ListByUser(ctx, u.ID, transaction.Filter{Kind: transaction.KindIncome})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("statistics inputs", func(t *testing.T) {
		since := time.Now().AddDate(0, 0, -30)

		sum, err := r.transactions.SumByKindSince(ctx, u.ID, transaction.KindExpense, since)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.RequireFromString("42.50")))

		count, err := r.transactions.CountSince(ctx, u.ID, since)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("search by description", func(t *testing.T) {
		found, err := r.transactions.Search(ctx, u.ID, "weekly", 20)
		require.NoError(t, err)
		assert.Len(t, found, 1)

		found, err = r.transactions.Search(ctx, u.ID, "nothing-matches", 20)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("update replaces tag links", func(t *testing.T) {
		tx.TagIDs = nil
		tx.Description = "weekly shop edited"
		require.NoError(t, r.transactions.Update(ctx, tx))

		got, err := r.transactions.GetByID(ctx, tx.ID)
		require.NoError(t, err)
		assert.Empty(t, got.TagIDs)
		assert.Equal(t, "weekly shop edited", got.Description)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.transactions.Delete(ctx, tx.ID))

		_, err := r.transactions.GetByID(ctx, tx.ID)
		assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)
	})
}

func TestBudgetRepository_ListActive(t *testing.T) {
	ctx, _, r := setup(t)

	u := seedUser(t, ctx, r, "anna@example.com")
	today := time.Now().Truncate(24 * time.Hour)
	lastMonth := today.AddDate(0, -1, 0)
	yesterday := today.AddDate(0, 0, -1)

	open := &budget.Budget{
		ID: uuid.New(), UserID: u.ID, Name: "open",
		Amount: decimal.NewFromInt(500), Period: budget.PeriodMonthly, StartDate: lastMonth,
	}
	expired := &budget.Budget{
		ID: uuid.New(), UserID: u.ID, Name: "expired",
		Amount: decimal.NewFromInt(500), Period: budget.PeriodMonthly,
		StartDate: lastMonth, EndDate: &yesterday,
	}
	require.NoError(t, r.budgets.Create(ctx, open))
	require.NoError(t, r.budgets.Create(ctx, expired))

	active, err := r.budgets.ListActive(ctx, u.ID, today)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "open", active[0].Name)
}

func TestLedgerRepository(t *testing.T) {
	ctx, db, r := setup(t)
	ledger := postgres.NewLedgerRepository(db.Pool)

	u := seedUser(t, ctx, r, "anna@example.com")
	cur := seedCurrency(t, ctx, r, "USD")
	acct := seedAccount(t, ctx, r, u.ID, cur.ID)

	now := time.Now()
	for _, e := range []struct {
		amount string
		kind   transaction.Kind
		age    int
	}{
		{"3000", transaction.KindIncome, 40},
		{"150", transaction.KindExpense, 5},
		{"200", transaction.KindTransfer, 2},
	} {
		require.NoError(t, r.transactions.Create(ctx, &transaction.Transaction{
			ID:         uuid.New(),
			AccountID:  acct.ID,
			Amount:     decimal.RequireFromString(e.amount),
			Kind:       e.kind,
			OccurredAt: now.AddDate(0, 0, -e.age),
		}))
	}

	cutoff := now.AddDate(0, 0, -30)

	before, err := ledger.EntriesBefore(ctx, u.ID, cutoff)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, transaction.KindIncome, before[0].Kind)

	between, err := ledger.EntriesBetween(ctx, u.ID, cutoff, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, between, 2)

	all, err := ledger.Entries(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
