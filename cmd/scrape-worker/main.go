package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sellerboard/sellerboard-backend/internal/ingest"
	product "github.com/sellerboard/sellerboard-backend/internal/products"
	"github.com/sellerboard/sellerboard-backend/internal/stores"
	"github.com/sellerboard/sellerboard-backend/pkg/config"
	"github.com/sellerboard/sellerboard-backend/pkg/db"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
	"github.com/sellerboard/sellerboard-backend/pkg/metrics"
	"github.com/sellerboard/sellerboard-backend/pkg/pubsub"
	"github.com/sellerboard/sellerboard-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "scrape-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	cfg.Service.Kind = "scrape-worker"

	logg = logger.New(logger.Options{
		ServiceName: "scrape-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(ctx, "error closing pubsub", err)
		}
	}()

	subscription := pubsubClient.SnapshotSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "snapshot subscription", errors.New("snapshot subscription not configured"))
	}

	storeService, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "store service", err)

	productService, err := product.NewService(product.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "product service", err)

	ingestMetrics := metrics.NewIngestMetrics(prometheus.DefaultRegisterer)

	consumer, err := ingest.NewConsumer(subscription, productService, storeService, redisClient, logg, ingestMetrics)
	requireResource(ctx, logg, "snapshot consumer", err)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})

	logg.Info(runCtx, "scrape worker started, waiting for snapshots")
	if err := consumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "snapshot consumer stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "scrape worker shut down")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
