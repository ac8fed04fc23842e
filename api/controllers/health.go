package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/pkg/config"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

const readinessTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness without touching dependencies.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Sellerboard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores and fails fast when any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Sellerboard-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		failed := false

		for name, dep := range map[string]pinger{"db": db, "redis": redis} {
			if dep == nil {
				checks[name] = "skipped"
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				failed = true
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness.check_failed", err)
				}
				continue
			}
			checks[name] = "up"
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks)
			responses.WriteError(r.Context(), nil, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
