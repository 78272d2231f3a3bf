package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"logistics-crm/internal/config"
	redisinfra "logistics-crm/internal/infrastructure/redis"
	"logistics-crm/internal/queue"
	"logistics-crm/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	redisClient, err := redisinfra.NewClient(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Metrics server for the worker process
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Worker metrics listening on :9093")
		http.ListenAndServe(":9093", mux)
	}()

	w := worker.New(queue.New(redisClient, cfg.Queue.Key))

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", "error", err)
	}

	logger.Info("worker exited")
}
