package controllers

import (
	"net/http"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/middleware"
	"github.com/streetcaps511-a11y/gmcaps-backend/api/responses"
	checkoutsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/checkout"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/invoice"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

func checkoutOwner(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	owner := middleware.EmailFromContext(r.Context())
	if owner == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
		return "", false
	}
	return owner, true
}

// CheckoutBegin opens the confirmation step.
func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Begin(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutConfirm starts processing the purchase.
func CheckoutConfirm(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Confirm(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, status)
	}
}

// CheckoutCancel backs out of the confirmation or processing step.
func CheckoutCancel(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Abort(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutDismiss closes the invoice view and clears the cart.
func CheckoutDismiss(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Dismiss(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutStatus reports the current flow position; clients poll this during
// processing.
func CheckoutStatus(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Status(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// CheckoutInvoiceDocument renders the displayed invoice as plain text.
func CheckoutInvoiceDocument(svc checkoutsvc.Service, renderer invoice.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || renderer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		owner, ok := checkoutOwner(w, r, logg)
		if !ok {
			return
		}

		status, err := svc.Status(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if status.Invoice == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no invoice to display"))
			return
		}

		doc, err := renderer.Render(status.Invoice)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice"))
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(doc))
	}
}
