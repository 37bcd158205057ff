package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/avelora/fincore/internal/adapter/client"
	httpAdapter "github.com/avelora/fincore/internal/adapter/http"
	"github.com/avelora/fincore/internal/adapter/http/handler"
	postgresRepo "github.com/avelora/fincore/internal/adapter/repository/postgres"
	redisRepo "github.com/avelora/fincore/internal/adapter/repository/redis"
	"github.com/avelora/fincore/internal/infrastructure/config"
	"github.com/avelora/fincore/internal/infrastructure/eventpublisher"
	"github.com/avelora/fincore/internal/infrastructure/logger"
	"github.com/avelora/fincore/internal/infrastructure/metrics"
	"github.com/avelora/fincore/internal/infrastructure/postgres"
	"github.com/avelora/fincore/internal/infrastructure/redis"
	"github.com/avelora/fincore/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	convRepo := postgresRepo.NewConversionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	analyticsRepo := postgresRepo.NewAnalyticsRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Collaborator clients
	rateClient := client.NewRateClient(cfg.RateServiceURL, cfg.RateServiceAPIKey, appLogger)
	rateProvider := redisRepo.NewCachedRateProvider(rateClient, redisRepo.NewCache(redisClient), cfg.RateCacheTTL, appLogger)
	tokenClient := client.NewTokenClient(cfg.TokenServiceURL, cfg.TokenServiceAPIKey, appLogger)
	journalClient := client.NewJournalClient(cfg.JournalServiceURL, cfg.JournalServiceAPIKey, appLogger)
	notifyClient := client.NewNotificationClient(cfg.NotificationServiceURL, cfg.NotificationServiceAPIKey, appLogger)

	// Use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, auditRepo, idGen)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, outboxRepo, auditRepo, idGen, journalClient, notifyClient, m, appLogger)
	conversionUC := usecase.NewConversionUseCase(txManager, accountRepo, txnRepo, convRepo, outboxRepo, auditRepo, idGen, rateProvider, tokenClient, journalClient, notifyClient, m, appLogger)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Retry:      retrier.Retry,
		Metrics:    m,
		Logger:     appLogger,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			appLogger.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:    handler.NewAccountHandler(accountUC),
		LedgerHandler:     handler.NewLedgerHandler(ledgerUC),
		ConversionHandler: handler.NewConversionHandler(conversionUC),
		AnalyticsHandler:  handler.NewAnalyticsHandler(analyticsUC),
		AuditHandler:      handler.NewAuditHandler(auditUC),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  idempotencyStore,
		Metrics:           m,
		Logger:            appLogger,
		RateLimit:         cfg.RateLimitPerSecond,
		RateBurst:         cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
