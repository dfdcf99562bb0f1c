package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/resvio/bot-platform/internal/api/router"
	"github.com/resvio/bot-platform/internal/bookings"
	appconfig "github.com/resvio/bot-platform/internal/config"
	"github.com/resvio/bot-platform/internal/dispatch"
	"github.com/resvio/bot-platform/internal/flow"
	"github.com/resvio/bot-platform/internal/messaging"
	"github.com/resvio/bot-platform/internal/observability/metrics"
	"github.com/resvio/bot-platform/internal/queue"
	"github.com/resvio/bot-platform/internal/session"
	"github.com/resvio/bot-platform/internal/tenant"
	"github.com/resvio/bot-platform/internal/worker"
	"github.com/resvio/bot-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting bot-platform",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		p, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		pool = p
		defer pool.Close()
	} else {
		logger.Warn("DATABASE_URL not set; booking persistence disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	sessionStore := session.NewStore(redisClient)
	tenantStore := tenant.NewStore(redisClient)

	var dir flow.Directory
	if pool != nil {
		dir = bookings.NewRepository(pool)
	} else {
		dir = bookings.NewInMemoryRepository()
	}
	registry := flow.NewRegistry(dir)

	sender, provider, reason := messaging.BuildSender(messaging.ProviderSelectionConfig{
		Preference:  cfg.MessageProvider,
		APIURL:      cfg.ProviderAPIURL,
		APIKey:      cfg.ProviderAPIKey,
		SendTimeout: cfg.ProviderSendTimeout,
	}, logger, m)
	if reason != "" {
		logger.Warn("message provider fallback", "provider", provider, "reason", reason)
	} else {
		logger.Info("message provider initialized", "provider", provider)
	}

	dispatcher := dispatch.New(sessionStore, tenantStore, registry, sender, cfg.SessionTTL, logger, m)

	inboundQueue := queue.NewMemoryQueue(cfg.QueueBuffer, m)
	workers := worker.NewPool(inboundQueue, dispatcher, logger,
		worker.WithWorkerCount(cfg.WorkerCount),
		worker.WithReceiveWaitSeconds(cfg.ReceiveWaitSecs),
		worker.WithReceiveBatchSize(cfg.ReceiveBatchSize),
	)
	workers.Start(ctx)

	r := router.New(&router.Config{
		Logger:           logger,
		MessagingHandler: messaging.NewHandler(cfg.WebhookSecret, inboundQueue, logger),
		TenantHandler:    tenant.NewHandler(tenantStore, logger),
		MetricsHandler:   promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Workers stop once ctx is cancelled; wait for in-flight turns.
	workers.Wait()

	logger.Info("stopped")
}
