package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/tripledger/internal/adapter/http"
	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/tripledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tripledger/internal/adapter/repository/redis"
	"github.com/iho/tripledger/internal/infrastructure/config"
	"github.com/iho/tripledger/internal/infrastructure/gateway"
	"github.com/iho/tripledger/internal/infrastructure/logger"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
	"github.com/iho/tripledger/internal/infrastructure/postgres"
	"github.com/iho/tripledger/internal/infrastructure/redis"
	"github.com/iho/tripledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	feePercent, err := decimal.NewFromString(cfg.ServiceFeePercent)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.ServiceFeePercent).Msg("invalid service fee percent")
	}
	// Config carries a percentage ("2" means 2%); the fee policy wants the
	// multiplier.
	feeRate := feePercent.Div(decimal.NewFromInt(100))

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	participantRepo := postgresRepo.NewParticipantRepository(pool)
	contribRepo := postgresRepo.NewContributionRepository(pool)
	eventRepo := postgresRepo.NewPaymentEventRepository(pool)
	orderRepo := postgresRepo.NewPaymentOrderRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)
	verifier := gateway.NewVerifier(cfg.GatewayServerKey)
	appMetrics := metrics.New()

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, contribRepo, participantRepo, eventRepo, idGen, cache)
	splitUC := usecase.NewSplitUseCase(txManager, expenseRepo, participantRepo, contribRepo, ledgerUC, idGen, cache)
	rosterUC := usecase.NewRosterUseCase(txManager, participantRepo, contribRepo, splitUC, idGen, retrier, cache)
	checkoutUC := usecase.NewCheckoutUseCase(txManager, contribRepo, expenseRepo, orderRepo, idGen, usecase.FeePolicy{
		Percent:      feeRate,
		FixedFee:     cfg.ServiceFeeFixed,
		RoundingUnit: cfg.RoundingUnit,
	}, appMetrics)
	reconcileUC := usecase.NewReconcileUseCase(txManager, orderRepo, contribRepo, ledgerUC, verifier, retrier, cache, appMetrics)
	consistencyUC := usecase.NewConsistencyUseCase(expenseRepo, contribRepo, eventRepo)

	// Initialize handlers
	expenseHandler := handler.NewExpenseHandler(splitUC)
	participantHandler := handler.NewParticipantHandler(rosterUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	paymentHandler := handler.NewPaymentHandler(ledgerUC)
	checkoutHandler := handler.NewCheckoutHandler(checkoutUC)
	webhookHandler := handler.NewWebhookHandler(reconcileUC)
	consistencyHandler := handler.NewConsistencyHandler(consistencyUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.CleanupLimiters()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ExpenseHandler:     expenseHandler,
		ParticipantHandler: participantHandler,
		LedgerHandler:      ledgerHandler,
		PaymentHandler:     paymentHandler,
		CheckoutHandler:    checkoutHandler,
		WebhookHandler:     webhookHandler,
		ConsistencyHandler: consistencyHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
