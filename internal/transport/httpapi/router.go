package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ekazakova/moneta/internal/transport/httpapi/handler"
	"github.com/ekazakova/moneta/internal/transport/httpapi/middleware"
	"github.com/ekazakova/moneta/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	AuthHandler        *handler.AuthHandler
	CurrencyHandler    *handler.CurrencyHandler
	CategoryHandler    *handler.CategoryHandler
	AccountHandler     *handler.AccountHandler
	TagHandler         *handler.TagHandler
	TransactionHandler *handler.TransactionHandler
	BudgetHandler      *handler.BudgetHandler
	StockHandler       *handler.StockHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	MarketHandler      *handler.MarketHandler
	HealthHandler      *handler.HealthHandler
	JWTMiddleware      func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public - no authentication required)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.AuthHandler != nil {
					r.Get("/auth/me", cfg.AuthHandler.Me)
				}

				// Currency routes
				if cfg.CurrencyHandler != nil {
					r.Post("/currencies", cfg.CurrencyHandler.CreateCurrency)
					r.Get("/currencies", cfg.CurrencyHandler.GetCurrencies)
					r.Get("/currencies/{id}", cfg.CurrencyHandler.GetCurrency)
					r.Put("/currencies/{id}", cfg.CurrencyHandler.UpdateCurrency)
					r.Delete("/currencies/{id}", cfg.CurrencyHandler.DeleteCurrency)
				}

				// Category routes
				if cfg.CategoryHandler != nil {
					r.Post("/categories", cfg.CategoryHandler.CreateCategory)
					r.Get("/categories", cfg.CategoryHandler.GetCategories)
					r.Get("/categories/{id}", cfg.CategoryHandler.GetCategory)
					r.Put("/categories/{id}", cfg.CategoryHandler.UpdateCategory)
					r.Delete("/categories/{id}", cfg.CategoryHandler.DeleteCategory)
				}

				// Account routes
				if cfg.AccountHandler != nil {
					r.Post("/accounts", cfg.AccountHandler.CreateAccount)
					r.Get("/accounts", cfg.AccountHandler.GetAccounts)
					r.Get("/accounts/total-balance", cfg.AccountHandler.GetTotalBalance)
					r.Get("/accounts/{id}", cfg.AccountHandler.GetAccount)
					r.Put("/accounts/{id}", cfg.AccountHandler.UpdateAccount)
					r.Delete("/accounts/{id}", cfg.AccountHandler.DeleteAccount)
				}

				// Tag routes
				if cfg.TagHandler != nil {
					r.Post("/tags", cfg.TagHandler.CreateTag)
					r.Get("/tags", cfg.TagHandler.GetTags)
					r.Put("/tags/{id}", cfg.TagHandler.UpdateTag)
					r.Delete("/tags/{id}", cfg.TagHandler.DeleteTag)
				}

				// Transaction routes
				if cfg.TransactionHandler != nil {
					r.Route("/transactions", func(r chi.Router) {
						r.Post("/", cfg.TransactionHandler.CreateTransaction)
						r.Get("/", cfg.TransactionHandler.GetTransactions)
						r.Get("/recent", cfg.TransactionHandler.GetRecentTransactions)
						r.Get("/statistics", cfg.TransactionHandler.GetStatistics)
						r.Get("/search", cfg.TransactionHandler.SearchTransactions)
						r.Get("/{id}", cfg.TransactionHandler.GetTransaction)
						r.Put("/{id}", cfg.TransactionHandler.UpdateTransaction)
						r.Delete("/{id}", cfg.TransactionHandler.DeleteTransaction)
						r.Post("/{id}/duplicate", cfg.TransactionHandler.DuplicateTransaction)
					})
				}

				// Budget routes
				if cfg.BudgetHandler != nil {
					r.Post("/budgets", cfg.BudgetHandler.CreateBudget)
					r.Get("/budgets", cfg.BudgetHandler.GetBudgets)
					r.Get("/budgets/active", cfg.BudgetHandler.GetActiveBudgets)
					r.Get("/budgets/{id}", cfg.BudgetHandler.GetBudget)
					r.Put("/budgets/{id}", cfg.BudgetHandler.UpdateBudget)
					r.Delete("/budgets/{id}", cfg.BudgetHandler.DeleteBudget)
				}

				// Stock routes
				if cfg.StockHandler != nil {
					r.Post("/stocks", cfg.StockHandler.CreateStock)
					r.Get("/stocks", cfg.StockHandler.GetStocks)
					r.Get("/stocks/portfolio-summary", cfg.StockHandler.GetPortfolioSummary)
					r.Get("/stocks/{id}", cfg.StockHandler.GetStock)
					r.Put("/stocks/{id}", cfg.StockHandler.UpdateStock)
					r.Delete("/stocks/{id}", cfg.StockHandler.DeleteStock)
				}

				// Chart data routes
				if cfg.AnalyticsHandler != nil {
					r.Get("/analytics/balance-history", cfg.AnalyticsHandler.GetBalanceHistory)
					r.Get("/analytics/comparison-data", cfg.AnalyticsHandler.GetCategoryComparison)
				}

				// Market data routes
				if cfg.MarketHandler != nil {
					r.Get("/market/crypto", cfg.MarketHandler.GetTopCryptos)
					r.Get("/market/stock", cfg.MarketHandler.GetStockQuote)
				}
			})
		}
	})

	return r
}
