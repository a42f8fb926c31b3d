package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ekazakova/moneta/internal/analytics"
	"github.com/ekazakova/moneta/internal/infra/gateway/binance"
	"github.com/ekazakova/moneta/internal/infra/gateway/finnhub"
	"github.com/ekazakova/moneta/internal/infra/postgres"
	infraRedis "github.com/ekazakova/moneta/internal/infra/redis"
	"github.com/ekazakova/moneta/internal/market"
	"github.com/ekazakova/moneta/internal/platform/account"
	"github.com/ekazakova/moneta/internal/platform/budget"
	"github.com/ekazakova/moneta/internal/platform/category"
	"github.com/ekazakova/moneta/internal/platform/currency"
	"github.com/ekazakova/moneta/internal/platform/stock"
	"github.com/ekazakova/moneta/internal/platform/tag"
	"github.com/ekazakova/moneta/internal/platform/transaction"
	"github.com/ekazakova/moneta/internal/platform/user"
	"github.com/ekazakova/moneta/internal/transport/httpapi"
	"github.com/ekazakova/moneta/internal/transport/httpapi/handler"
	"github.com/ekazakova/moneta/internal/transport/httpapi/middleware"
	"github.com/ekazakova/moneta/pkg/config"
	"github.com/ekazakova/moneta/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Moneta API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Apply pending schema migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database schema up to date")

	// Initialize Redis client for market data caching
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	currencyRepo := postgres.NewCurrencyRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	accountRepo := postgres.NewAccountRepository(db.Pool)
	tagRepo := postgres.NewTagRepository(db.Pool)
	transactionRepo := postgres.NewTransactionRepository(db.Pool)
	budgetRepo := postgres.NewBudgetRepository(db.Pool)
	stockRepo := postgres.NewStockRepository(db.Pool)
	ledgerRepo := postgres.NewLedgerRepository(db.Pool)

	// Initialize domain services
	userSvc := user.NewService(userRepo, log)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret)
	currencySvc := currency.NewService(currencyRepo)
	categorySvc := category.NewService(categoryRepo)
	accountSvc := account.NewService(accountRepo)
	tagSvc := tag.NewService(tagRepo)
	transactionSvc := transaction.NewService(transactionRepo, accountSvc, categorySvc)
	budgetSvc := budget.NewService(budgetRepo)
	stockSvc := stock.NewService(stockRepo)
	analyticsSvc := analytics.NewService(ledgerRepo, analytics.DefaultConfig())

	// Initialize market data components
	marketCache := infraRedis.NewCache(redisClient, log)
	cryptoFeed := binance.NewCryptoFeedAdapter(binance.NewClient(cfg.BinanceBaseURL, cfg.MarketTimeout))
	stockFeed := finnhub.NewStockFeedAdapter(finnhub.NewClient(cfg.StockQuoteURL, cfg.StockAPIKey, cfg.MarketTimeout))
	marketSvc := market.NewService(cryptoFeed, stockFeed, marketCache, cfg.MarketCacheTTL, log)
	log.Info("Market data service initialized")

	// Build router
	router := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthHandler:        handler.NewAuthHandler(userSvc, jwtSvc),
		CurrencyHandler:    handler.NewCurrencyHandler(currencySvc),
		CategoryHandler:    handler.NewCategoryHandler(categorySvc),
		AccountHandler:     handler.NewAccountHandler(accountSvc),
		TagHandler:         handler.NewTagHandler(tagSvc),
		TransactionHandler: handler.NewTransactionHandler(transactionSvc),
		BudgetHandler:      handler.NewBudgetHandler(budgetSvc),
		StockHandler:       handler.NewStockHandler(stockSvc),
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsSvc),
		MarketHandler:      handler.NewMarketHandler(marketSvc),
		HealthHandler:      handler.NewHealthHandler(db),
		JWTMiddleware:      middleware.JWTMiddleware(jwtSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine so shutdown can be handled below
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("HTTP server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	// Graceful shutdown with a deadline
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
