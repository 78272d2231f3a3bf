package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics-crm/internal/api"
	"logistics-crm/internal/auth"
	"logistics-crm/internal/config"
	"logistics-crm/internal/infrastructure/postgres"
	redisinfra "logistics-crm/internal/infrastructure/redis"
	"logistics-crm/internal/queue"
	"logistics-crm/internal/usecase"
	"logistics-crm/internal/webhook"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pgPool, err := postgres.NewClient(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
	})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	redisClient, err := redisinfra.NewClient(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	leadRepo := postgres.NewLeadRepository(pgPool)
	orderRepo := postgres.NewOrderRepository(pgPool)
	auditRepo := postgres.NewAuditRepository(pgPool)
	userRepo := postgres.NewUserRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	// Coordination components
	tokens := auth.NewTokenResolver(cfg.Auth.Secret)
	repriceQueue := queue.New(redisClient, cfg.Queue.Key)
	dispatcher := webhook.NewDispatcher(ctx, webhook.Config{
		URL:            cfg.Webhook.URL,
		MaxAttempts:    cfg.Webhook.MaxAttempts,
		InitialBackoff: time.Duration(cfg.Webhook.InitialBackoffSeconds) * time.Second,
		Timeout:        time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second,
	})

	// UseCases
	handlers := api.NewHandlers(
		usecase.NewRegisterUser(userRepo, tokens),
		usecase.NewLoginUser(userRepo, tokens),
		usecase.NewCreateLead(leadRepo),
		usecase.NewGetLead(leadRepo),
		usecase.NewListLeads(leadRepo),
		usecase.NewUpdateLead(leadRepo),
		usecase.NewDeleteLead(leadRepo),
		usecase.NewCreateOrder(orderRepo, leadRepo, txManager),
		usecase.NewGetOrder(orderRepo),
		usecase.NewListOrders(orderRepo),
		usecase.NewUpdateOrder(orderRepo, dispatcher),
		usecase.NewDeleteOrder(orderRepo),
		usecase.NewQuotePrice(),
		usecase.NewRepriceOrder(orderRepo, leadRepo, repriceQueue),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: api.NewRouter(handlers, tokens, auditRepo, redisClient, cfg),
	}

	go func() {
		logger.Info("Server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
