package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/streetcaps511-a11y/gmcaps-backend/api/routes"
	authsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/auth"
	cartpkg "github.com/streetcaps511-a11y/gmcaps-backend/internal/cart"
	catalogsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/catalog"
	checkoutsvc "github.com/streetcaps511-a11y/gmcaps-backend/internal/checkout"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/invoice"
	"github.com/streetcaps511-a11y/gmcaps-backend/internal/notifications"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/config"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/kv"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/logger"
	"github.com/streetcaps511-a11y/gmcaps-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := kv.Open(runCtx, cfg, logg)
	if err != nil {
		logg.Error(runCtx, "failed to open storage", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing storage", err)
		}
	}()

	registry := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(registry)

	seed := catalogsvc.DefaultSeed()
	if cfg.Catalog.SeedPath != "" {
		seed, err = catalogsvc.LoadSeedFile(cfg.Catalog.SeedPath)
		if err != nil {
			logg.Error(runCtx, "failed to load catalog seed file", err)
			os.Exit(1)
		}
	}

	catalogService, err := catalogsvc.NewService(runCtx, store, logg, seed)
	if err != nil {
		logg.Error(runCtx, "failed to create catalog service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(store, cfg.JWT, cfg.Accounts, logg)
	if err != nil {
		logg.Error(runCtx, "failed to create auth service", err)
		os.Exit(1)
	}

	cartStore, err := cartpkg.NewStore(store, logg)
	if err != nil {
		logg.Error(runCtx, "failed to create cart store", err)
		os.Exit(1)
	}

	feed := notifications.NewFeed(cfg.Toasts.FeedCapacity)

	checkoutService, err := checkoutsvc.NewService(
		cartStore, authService, feed, m, logg, cfg.Checkout.ProcessingDelay)
	if err != nil {
		logg.Error(runCtx, "failed to create checkout service", err)
		os.Exit(1)
	}

	invoiceRenderer, err := invoice.NewTextRenderer()
	if err != nil {
		logg.Error(runCtx, "failed to create invoice renderer", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.NormalizedDriver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			store,
			m,
			registry,
			authService,
			catalogService,
			cartStore,
			checkoutService,
			invoiceRenderer,
			feed,
		),
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		shutdownErr := server.Shutdown(shutdownCtx)
		listenErr := <-serveErr
		if listenErr == http.ErrServerClosed {
			listenErr = nil
		}
		if err := multierr.Append(shutdownErr, listenErr); err != nil {
			logg.Error(ctx, "error during shutdown", err)
			os.Exit(1)
		}
		logg.Info(ctx, "server stopped")
	}
}
