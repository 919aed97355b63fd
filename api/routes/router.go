package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/controllers"
	"github.com/streetcaps511-a11y/gmcaps-backend/api/middleware"
	authsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/auth"
	cartpkg "github.com/streetcaps511-a11y/gmcaps-backend/internal/cart"
	catalogsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/catalog"
	checkoutsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/checkout"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/invoice"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/notifications"
	pkgauth "github.com/streetcaps511-a11y/gmcaps-backend/pkg/auth"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	pkgerrors "github.com/streetcaps511-a11y/gmcaps-backend/pkg/errors"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/metrics"
)

// sessionChecker adapts the auth service to the middleware's session probe.
type sessionChecker struct {
	svc authsvc.Service
}

func (c sessionChecker) HasSession(ctx context.Context, email string) (bool, error) {
	_, err := c.svc.Current(ctx, email)
	if err == nil {
		return true, nil
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
		return false, nil
	}
	return false, err
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store kv.Store,
	m *metrics.StorefrontMetrics,
	gatherer prometheus.Gatherer,
	authService authsvc.Service,
	catalogService catalogsvc.Service,
	cartStore *cartpkg.Store,
	checkoutService checkoutsvc.Service,
	invoiceRenderer invoice.Renderer,
	feed *notifications.Feed,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, m),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(authService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Get("/{id}", controllers.GetProduct(catalogService, logg))
	})

	cartHandlers := controllers.Cart{
		Store:   cartStore,
		Catalog: catalogService,
		Notify:  feed,
		Metrics: m,
		Logg:    logg,
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker{svc: authService}, logg))

		r.Post("/auth/logout", controllers.Logout(authService, logg))
		r.Get("/auth/session", controllers.Session(authService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandlers.Get)
			r.Delete("/", cartHandlers.Clear)
			r.Get("/totals", cartHandlers.Totals)
			r.Post("/items", cartHandlers.AddItem)
			r.Delete("/items/{key}", cartHandlers.RemoveItem)
			r.Post("/items/{key}/increase", cartHandlers.IncreaseItem)
			r.Post("/items/{key}/decrease", cartHandlers.DecreaseItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/begin", controllers.CheckoutBegin(checkoutService, logg))
			r.Post("/confirm", controllers.CheckoutConfirm(checkoutService, logg))
			r.Post("/cancel", controllers.CheckoutCancel(checkoutService, logg))
			r.Post("/dismiss", controllers.CheckoutDismiss(checkoutService, logg))
			r.Get("/status", controllers.CheckoutStatus(checkoutService, logg))
			r.Get("/invoice/document", controllers.CheckoutInvoiceDocument(checkoutService, invoiceRenderer, logg))
		})

		r.Get("/notifications", controllers.Notifications(feed, logg))

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(pkgauth.RoleAdmin), logg))
			r.Get("/", controllers.AdminListProducts(catalogService, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Put("/{id}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{id}", controllers.AdminDeleteProduct(catalogService, logg))
		})
	})

	return r
}
