package controllers

import (
	"net/http"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/responses"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GMCaps-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing store before reporting ready.
func HealthReady(cfg *config.Config, store kv.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GMCaps-Env", cfg.App.Env)

		if store != nil {
			if err := store.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
