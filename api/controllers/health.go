package controllers

import (
	"context"
	"net/http"

	"github.com/hrgrifes/atelier-backend/api/responses"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	pkgerrors "github.com/hrgrifes/atelier-backend/pkg/errors"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
)

const envHeader = "X-Atelier-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the durable store and the session store. A nil pinger is
// treated as not configured and skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, sessions pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]pinger{
			"db":    db,
			"redis": sessions,
		}
		for name, p := range checks {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency unavailable").
						WithDetails(map[string]any{"dependency": name}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
