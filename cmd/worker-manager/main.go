// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"consultation-workers/internal/common/aws"
	"consultation-workers/internal/common/camunda"
	"consultation-workers/internal/common/config"
	"consultation-workers/internal/common/database"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/observability"
	"consultation-workers/internal/common/validation"
	"consultation-workers/pkg/registry"

	ar "consultation-workers/internal/workers/assessment/analyze-responses"
	es "consultation-workers/internal/workers/consultation/evaluate-submission"
	ms "consultation-workers/internal/workers/matching/match-services"
	rp "consultation-workers/internal/workers/reporting/assemble-report"
	rl "consultation-workers/internal/workers/routing/route-lead"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Catalog ---
	store, closeCatalog, err := buildCatalog(ctx, cfg, log, zapLog)
	if err != nil {
		zapLog.Fatal("catalog setup failed", zap.Error(err))
	}
	defer closeCatalog()

	err = retryWithBackoff(func() error {
		return store.Reload(ctx)
	}, 5, 2*time.Second, zapLog, "Catalog load")
	if err != nil {
		zapLog.Fatal("catalog load failed after retries", zap.Error(err))
	}
	zapLog.Info("Catalog loaded", zap.Int("packages", store.Len()), zap.Uint64("version", store.Version()))

	// --- Redis match cache (optional) ---
	var rdb *redis.Client
	if cfg.Matching.CacheEnabled && cfg.Database.Redis.Enabled() {
		var rc *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rc, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rc.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		rdb = rc.GetClient()
		zapLog.Info("Redis connected successfully")
	}

	// --- SNS routing notifications (optional) ---
	var publisher rl.Publisher
	if cfg.Notifications.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		publisher = snsClient
		zapLog.Info("SNS publisher configured", zap.String("topicArn", cfg.Notifications.SNS.TopicARN))
	}

	// --- Input validation ---
	reg, err := registry.Default()
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("schema compilation failed", zap.Error(err))
	}

	// --- Zeebe client with retry ---
	var client *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Workers ---
	zbClient := client.GetClient()
	var workers []worker.JobWorker
	start := func(taskType string, handler camunda.HandlerFunc) {
		if w := camunda.StartWorker(zbClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, zapLog); w != nil {
			workers = append(workers, w)
		}
	}

	start(ar.TaskType, ar.NewHandler(ar.LoadConfig(cfg), validator, log).Handle)
	start(ms.TaskType, ms.NewHandler(ms.LoadConfig(cfg), store, rdb, validator, log).Handle)
	start(rl.TaskType, rl.NewHandler(rl.LoadConfig(cfg), publisher, validator, log).Handle)
	start(rp.TaskType, rp.NewHandler(rp.LoadConfig(cfg), validator, log).Handle)
	start(es.TaskType, es.NewHandler(es.LoadConfig(cfg), store, obs, validator, log).Handle)

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health, metrics & catalog admin server ---
	srv := newServer(cfg.Server, newRouter(store, client, log))
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}

	if err := client.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
