package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sellerboard/sellerboard-backend/api/routes"
	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/ingest"
	"github.com/sellerboard/sellerboard-backend/internal/insights"
	product "github.com/sellerboard/sellerboard-backend/internal/products"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/internal/stores"
	"github.com/sellerboard/sellerboard-backend/pkg/config"
	"github.com/sellerboard/sellerboard-backend/pkg/db"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
	"github.com/sellerboard/sellerboard-backend/pkg/migrate"
	"github.com/sellerboard/sellerboard-backend/pkg/pubsub"
	"github.com/sellerboard/sellerboard-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	storeService, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "store service", err)

	productService, err := product.NewService(product.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "product service", err)

	shippingService, err := shipping.NewService(shipping.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "shipping service", err)

	analyticsService, err := analytics.NewService(productService, shippingService)
	requireResource(ctx, logg, "analytics service", err)

	var insightService insights.Service
	if cfg.Insights.APIKey != "" {
		summarizer, err := insights.NewClient(cfg.Insights)
		requireResource(ctx, logg, "insight summarizer", err)
		insightService, err = insights.NewService(summarizer, redisClient, logg, cfg.Insights)
		requireResource(ctx, logg, "insight service", err)
	} else {
		logg.Warn(ctx, "insights api key not set, summary endpoint disabled")
	}

	var snapshotPublisher *ingest.Publisher
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(ctx, "error closing pubsub", err)
			}
		}()
		snapshotPublisher, err = ingest.NewPublisher(pubsubClient.SnapshotPublisher())
		requireResource(ctx, logg, "snapshot publisher", err)
	} else {
		logg.Warn(ctx, "gcp project not set, snapshot enqueue endpoint disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(runCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			storeService,
			productService,
			shippingService,
			analyticsService,
			insightService,
			snapshotPublisher,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(runCtx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
