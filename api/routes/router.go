package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sellerboard/sellerboard-backend/api/controllers"
	"github.com/sellerboard/sellerboard-backend/api/middleware"
	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/ingest"
	"github.com/sellerboard/sellerboard-backend/internal/insights"
	product "github.com/sellerboard/sellerboard-backend/internal/products"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/internal/stores"
	"github.com/sellerboard/sellerboard-backend/pkg/config"
	"github.com/sellerboard/sellerboard-backend/pkg/db"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
	"github.com/sellerboard/sellerboard-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	storeService stores.Service,
	productService product.Service,
	shippingService shipping.Service,
	analyticsService analytics.Service,
	insightService insights.Service,
	snapshotPublisher *ingest.Publisher,
) http.Handler {
	snapshotEnqueue := controllers.ProductSnapshotEnqueue(nil, logg)
	if snapshotPublisher != nil {
		snapshotEnqueue = controllers.ProductSnapshotEnqueue(snapshotPublisher, logg)
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	insightsPolicy := middleware.NewRateLimitPolicy(
		"insights",
		cfg.RateLimit.InsightsWindow,
		cfg.RateLimit.InsightsIPLimit,
		cfg.RateLimit.InsightsStoreLimit,
	)
	insightsLimiter := middleware.RateLimit(insightsPolicy, nil, logg)
	if redisClient != nil {
		insightsLimiter = middleware.RateLimit(insightsPolicy, redisClient, logg)
	}

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.StoreContext(logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/stores", func(r chi.Router) {
			r.Get("/me", controllers.StoreProfile(storeService, logg))
		})

		r.Route("/v1/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(productService, logg))
			r.Get("/{barcode}", controllers.ProductGet(productService, logg))
			r.Post("/snapshot", controllers.ProductSnapshot(productService, logg))
			r.Post("/snapshot/enqueue", snapshotEnqueue)
			r.Get("/{barcode}/variant-sales", controllers.VariantEstimates(productService, logg))
		})

		r.Route("/v1/rates", func(r chi.Router) {
			r.Get("/", controllers.RateTable(shippingService, logg))
			r.Get("/resolve", controllers.RateResolve(shippingService, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.MemberRoleOwner), logg))
				r.Post("/overrides", controllers.RateOverrideCreate(shippingService, logg))
				r.Put("/overrides/{rateId}", controllers.RateOverrideUpdate(shippingService, logg))
				r.Delete("/overrides/{rateId}", controllers.RateOverrideDelete(shippingService, logg))
				r.Post("/overrides/reset", controllers.RateOverridesReset(shippingService, logg))
			})
		})

		r.Route("/v1/profit", func(r chi.Router) {
			r.Post("/calculate", controllers.ProfitCalculate(shippingService, logg))
			r.Post("/simulate", controllers.ProfitSimulate(shippingService, logg))
		})

		r.Route("/v1/analytics", func(r chi.Router) {
			r.Get("/dashboard", controllers.AnalyticsDashboard(analyticsService, logg))
		})

		r.Route("/v1/reports", func(r chi.Router) {
			r.Get("/dashboard", controllers.Report(analyticsService, storeService, logg))
		})

		r.Route("/v1/estimates", func(r chi.Router) {
			r.Post("/traffic", controllers.TrafficAnalysis(logg))
		})

		r.Route("/v1/insights", func(r chi.Router) {
			r.With(insightsLimiter).
				Post("/summary", controllers.InsightSummary(analyticsService, insightService, logg))
		})
	})

	return r
}
