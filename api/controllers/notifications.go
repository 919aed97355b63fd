package controllers

import (
	"net/http"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/middleware"
	"github.com/streetcaps511-a11y/gmcaps-backend/api/responses"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/notifications"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

// Notifications drains the caller's pending toast messages.
func Notifications(feed *notifications.Feed, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if feed == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "notifications unavailable"))
			return
		}

		owner := middleware.EmailFromContext(r.Context())
		if owner == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		toasts := feed.Drain(owner)
		if toasts == nil {
			toasts = []notifications.Toast{}
		}
		responses.WriteSuccess(w, toasts)
	}
}
