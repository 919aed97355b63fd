package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/responses"
	catalogsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/catalog"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
)

type productResponse struct {
	catalogsvc.Product
	DiscountPercent int `json:"discount_percent,omitempty"`
}

func newProductResponse(p catalogsvc.Product) productResponse {
	return productResponse{Product: p, DiscountPercent: p.DiscountPercent()}
}

func newProductListResponse(items []catalogsvc.Product) []productResponse {
	out := make([]productResponse, len(items))
	for i, p := range items {
		out[i] = newProductResponse(p)
	}
	return out
}

// ListProducts returns the storefront catalog: active products only.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductListResponse(products))
	}
}

// GetProduct returns one product by id.
func GetProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := chi.URLParam(r, "id")
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(*product))
	}
}
