package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/avidela/rentas/internal/adapter/http"
	"github.com/avidela/rentas/internal/adapter/http/handler"
	"github.com/avidela/rentas/internal/adapter/http/middleware"
	postgresRepo "github.com/avidela/rentas/internal/adapter/repository/postgres"
	redisRepo "github.com/avidela/rentas/internal/adapter/repository/redis"
	"github.com/avidela/rentas/internal/infrastructure/config"
	"github.com/avidela/rentas/internal/infrastructure/postgres"
	"github.com/avidela/rentas/internal/infrastructure/redis"
	"github.com/avidela/rentas/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
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
	receiptRepo := postgresRepo.NewReceiptRepository(pool)
	tenantRepo := postgresRepo.NewTenantRepository(pool)
	propertyRepo := postgresRepo.NewPropertyRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	registerRepo := postgresRepo.NewRegisterRepository(pool)
	snapshotRepo := postgresRepo.NewSnapshotRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	balanceCache := redisRepo.NewBalanceCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	// Initialize use cases
	receiptUC := usecase.NewReceiptUseCase(receiptRepo, tenantRepo, propertyRepo, idGen, clock)
	paymentUC := usecase.NewPaymentUseCase(txManager, receiptRepo, tenantRepo, movementRepo, registerRepo, balanceCache, idGen, clock)
	cashUC := usecase.NewCashRegisterUseCase(txManager, movementRepo, registerRepo, idGen, clock)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, propertyRepo, receiptRepo, balanceCache, idGen, cfg.BalanceCacheTTL)
	statementUC := usecase.NewStatementUseCase(receiptRepo, tenantRepo)
	reportUC := usecase.NewReportUseCase(propertyRepo, tenantRepo, receiptRepo)
	portabilityUC := usecase.NewPortabilityUseCase(snapshotRepo, clock)
	reconciliationUC := usecase.NewReconciliationUseCase(tenantRepo, receiptRepo, movementRepo, registerRepo)

	// Initialize handlers
	receiptHandler := handler.NewReceiptHandler(receiptUC, paymentUC)
	tenantHandler := handler.NewTenantHandler(tenantUC, statementUC)
	cashHandler := handler.NewCashHandler(cashUC)
	reportHandler := handler.NewReportHandler(reportUC)
	portabilityHandler := handler.NewPortabilityHandler(portabilityUC)
	reconciliationHandler := handler.NewReconciliationHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitPerSecond > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReceiptHandler:        receiptHandler,
		TenantHandler:         tenantHandler,
		CashHandler:           cashHandler,
		ReportHandler:         reportHandler,
		PortabilityHandler:    portabilityHandler,
		ReconciliationHandler: reconciliationHandler,
		HealthHandler:         healthHandler,
		IdempotencyStore:      idempotencyStore,
		RateLimiter:           rateLimiter,
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
