package controllers

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/middleware"
	"github.com/streetcaps511-a11y/gmcaps-backend/api/responses"
	"github.com/streetcaps511-a11y/gmcaps-backend/api/validators"
	cartpkg "github.com/streetcaps511-a11y/gmcaps-backend/internal/cart"
	catalogsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/catalog"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/pricing"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/metrics"
)

// CartNotifier receives toast messages triggered by cart activity.
type CartNotifier interface {
	Push(owner, message string)
}

// Cart bundles the collaborators every cart handler needs.
type Cart struct {
	Store   *cartpkg.Store
	Catalog catalogsvc.Service
	Notify  CartNotifier
	Metrics *metrics.StorefrontMetrics
	Logg    *logger.Logger
}

type cartItemView struct {
	Key string `json:"key"`
	cartpkg.LineItem
}

type cartView struct {
	Items         []cartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	Totals        pricing.Totals `json:"totals"`
}

func newCartView(c cartpkg.Cart) cartView {
	items := make([]cartItemView, len(c))
	for i, line := range c {
		items[i] = cartItemView{Key: line.Key(), LineItem: line}
	}
	return cartView{
		Items:         items,
		TotalQuantity: cartpkg.TotalQuantity(c),
		Totals:        pricing.ComputeTotals(c),
	}
}

func (h Cart) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := middleware.EmailFromContext(r.Context())
	if owner == "" {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
		return "", false
	}
	return owner, true
}

// Get returns the owner's cart with running totals.
func (h Cart) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	responses.WriteSuccess(w, newCartView(h.Store.Load(r.Context(), owner)))
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// AddItem resolves the product, snapshots it into a line item, and merges it
// into the cart. Lines are keyed by product and size, so the same cap in two
// sizes stays two lines. The merged quantity never exceeds the product's
// stock.
func (h Cart) AddItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var payload addItemRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}

	product, err := h.Catalog.Get(r.Context(), payload.ProductID)
	if err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}
	if !product.Active {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product unavailable"))
		return
	}
	if product.Stock < 1 {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product out of stock"))
		return
	}

	size := strings.TrimSpace(payload.Size)
	if len(product.Sizes) > 0 {
		if size == "" {
			responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "size required"))
			return
		}
		if !slices.Contains(product.Sizes, size) {
			responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown size"))
			return
		}
	}
	if payload.Color != "" && len(product.Colors) > 0 && !slices.Contains(product.Colors, payload.Color) {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown color"))
		return
	}

	item := cartpkg.LineItem{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.Price,
		SelectedSize:  size,
		SelectedColor: payload.Color,
	}
	if len(product.Images) > 0 {
		item.ImageURL = product.Images[0]
	}

	qty := payload.Quantity
	if qty < 1 {
		qty = 1
	}
	current := h.Store.Load(r.Context(), owner)
	merged := qty
	if existing, ok := cartpkg.Find(current, item.Key()); ok {
		merged += existing.Quantity
	}
	if merged > product.Stock {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock"))
		return
	}

	updated := cartpkg.Add(current, item, qty)
	if err := h.Store.Save(r.Context(), owner, updated); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}

	if h.Notify != nil {
		h.Notify.Push(owner, "Producto agregado al carrito")
	}
	h.Metrics.IncCartOp("add")
	responses.WriteSuccess(w, newCartView(updated))
}

func (h Cart) itemKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "key")
	key, err := url.PathUnescape(raw)
	if err != nil || key == "" {
		responses.WriteError(r.Context(), h.Logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item key required"))
		return "", false
	}
	return key, true
}

// RemoveItem drops a line from the cart. Unknown keys are a no-op.
func (h Cart) RemoveItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	key, ok := h.itemKey(w, r)
	if !ok {
		return
	}

	updated := cartpkg.Remove(h.Store.Load(r.Context(), owner), key)
	if err := h.Store.Save(r.Context(), owner, updated); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}
	h.Metrics.IncCartOp("remove")
	responses.WriteSuccess(w, newCartView(updated))
}

// IncreaseItem bumps a line's quantity by one. Unknown keys are a no-op.
func (h Cart) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	key, ok := h.itemKey(w, r)
	if !ok {
		return
	}

	updated := cartpkg.Increase(h.Store.Load(r.Context(), owner), key)
	if err := h.Store.Save(r.Context(), owner, updated); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}
	h.Metrics.IncCartOp("increase")
	responses.WriteSuccess(w, newCartView(updated))
}

// DecreaseItem lowers a line's quantity by one, removing the line when it
// reaches zero. A cart never holds a zero-quantity line.
func (h Cart) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	key, ok := h.itemKey(w, r)
	if !ok {
		return
	}

	updated := cartpkg.Decrease(h.Store.Load(r.Context(), owner), key)
	if err := h.Store.Save(r.Context(), owner, updated); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}
	h.Metrics.IncCartOp("decrease")
	responses.WriteSuccess(w, newCartView(updated))
}

// Clear empties the cart.
func (h Cart) Clear(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	updated := cartpkg.Clear(h.Store.Load(r.Context(), owner))
	if err := h.Store.Save(r.Context(), owner, updated); err != nil {
		responses.WriteError(r.Context(), h.Logg, w, err)
		return
	}
	h.Metrics.IncCartOp("clear")
	responses.WriteSuccess(w, newCartView(updated))
}

// Totals returns subtotal, tax, and total for the owner's cart.
func (h Cart) Totals(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	responses.WriteSuccess(w, pricing.ComputeTotals(h.Store.Load(r.Context(), owner)))
}
