package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akaash02/TaskMaster/internal/app"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/pkg/config"
	"github.com/akaash02/TaskMaster/pkg/observability"
)

var version = "dev"

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := observability.NewLogger(observability.LogConfig{Level: "info", Output: os.Stdout})

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.RabbitMQURL == "" {
		logger.Error("RABBITMQ_URL is required for the worker")
		os.Exit(1)
	}

	logger = observability.NewLogger(observability.LogConfig{
		Level:          cfg.LogLevel,
		Format:         observability.LogFormat(cfg.LogFormat),
		Output:         os.Stdout,
		ServiceName:    "taskmaster-worker",
		ServiceVersion: version,
	})
	logger.Info("starting taskmaster worker")

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:       cfg.RabbitMQURL,
		QueueName: cfg.WorkerQueue,
		Prefetch:  cfg.WorkerPrefetch,
		Logger:    logger,
	}, eventbus.NewConsumerRegistry(logger))
	if err != nil {
		logger.Error("failed to connect consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	consumer.RegisterConsumer(container.TaskChangedSubscriber)

	if cfg.WorkerHealthAddr != "" {
		healthSrv := newHealthServer(cfg.WorkerHealthAddr, container, consumer)

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		cancel()
		container.Close()
		os.Exit(1)
	}

	logger.Info("worker stopped")
}

func newHealthServer(addr string, container *app.Container, consumer *eventbus.RabbitMQConsumer) *http.Server {
	health := observability.NewHealthRegistry(2 * time.Second)
	health.Register("database", observability.PingChecker("database", true, container.DBConn.Ping))
	if container.RedisClient != nil {
		health.Register("redis", observability.PingChecker("redis", false, func(ctx context.Context) error {
			return container.RedisClient.Ping(ctx).Err()
		}))
	}
	health.Register("rabbitmq", observability.PingChecker("rabbitmq", true, func(context.Context) error {
		if !consumer.IsConnected() {
			return errors.New("connection closed")
		}
		return nil
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "version": version})
	})
	mux.Handle("/readyz", health.Handler())
	mux.Handle("/metrics", container.Metrics.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
