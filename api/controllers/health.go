package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/promostore-backend/api/responses"
	"github.com/angelmondragon/promostore-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/promostore-backend/pkg/errors"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
)

const (
	envHeader    = "X-Promostore-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the cart storage answers a ping.
func HealthReady(cfg *config.Config, storage Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if storage != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := storage.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable").
					WithDetails(map[string]any{"storage": cfg.Cart.Storage}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready", "storage": cfg.Cart.Storage})
	}
}
