package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/promostore-backend/api/routes"
	"github.com/angelmondragon/promostore-backend/internal/cart"
	"github.com/angelmondragon/promostore-backend/internal/cart/storage"
	"github.com/angelmondragon/promostore-backend/internal/catalog"
	"github.com/angelmondragon/promostore-backend/internal/quotation"
	"github.com/angelmondragon/promostore-backend/pkg/config"
	"github.com/angelmondragon/promostore-backend/pkg/db"
	"github.com/angelmondragon/promostore-backend/pkg/instance"
	"github.com/angelmondragon/promostore-backend/pkg/logger"
	"github.com/angelmondragon/promostore-backend/pkg/metrics"
	"github.com/angelmondragon/promostore-backend/pkg/migrate"
	"github.com/angelmondragon/promostore-backend/pkg/redis"
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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			err = multierr.Append(err, closers[i]())
		}
	}()

	cartStorage, closeStorage, err := openCartStorage(ctx, cfg, logg)
	if err != nil {
		return err
	}
	closers = append(closers, closeStorage)

	reg := prometheus.DefaultRegisterer
	browseMetrics := metrics.NewBrowseMetrics(reg)
	cartMetrics := metrics.NewCartMetrics(reg)
	quotationMetrics := metrics.NewQuotationMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	cat := catalog.Default()

	browseSessions, err := catalog.NewRegistry(cfg.Browse.MaxSessions, func() (*catalog.Runner, error) {
		return catalog.NewRunner(cat, cat.DefaultCriteria(), catalog.RunnerOptions{
			Delay:    cfg.Browse.Delay,
			Observer: browseMetrics,
			Logger:   logg,
		})
	})
	if err != nil {
		return fmt.Errorf("creating browse registry: %w", err)
	}
	closers = append(closers, browseSessions.Close)

	cartService, err := cart.NewService(cart.ServiceParams{
		Catalog:   cat,
		Storage:   cartStorage,
		Logger:    logg,
		Observer:  cartMetrics,
		MaxStores: cfg.Cart.MaxOpenStores,
	})
	if err != nil {
		return fmt.Errorf("creating cart service: %w", err)
	}

	renderer, err := quotation.NewRenderer()
	if err != nil {
		return fmt.Errorf("creating quotation renderer: %w", err)
	}
	quotationService, err := quotation.NewService(quotation.ServiceParams{
		Catalog: cat,
		Exporters: map[string]quotation.Exporter{
			quotation.FormatHTML: quotation.NewHTMLExporter(renderer),
			quotation.FormatPDF:  quotation.NewPDFExporter(renderer, cfg.Quotation.ChromePath, cfg.Quotation.Timeout),
		},
		DefaultFormat: cfg.Quotation.Export,
		Logger:        logg,
		Observer:      quotationMetrics,
	})
	if err != nil {
		return fmt.Errorf("creating quotation service: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	lctx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"cart_storage": cfg.Cart.Storage,
		"instance":     instance.GetID(),
	})
	logg.Info(lctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			cartStorage,
			httpMetrics,
			promhttp.Handler(),
			cat,
			browseSessions,
			cartService,
			quotationService,
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info(lctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openCartStorage builds the configured cart backend and the func that
// releases its connections.
func openCartStorage(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cart.Storage {
	case config.CartStorageFile:
		backend, err := storage.NewFile(cfg.Cart.FileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file cart storage: %w", err)
		}
		return backend, noop, nil

	case config.CartStorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrapping redis: %w", err)
		}
		backend, err := storage.NewRedis(client, cfg.Cart.TTL)
		if err != nil {
			return nil, nil, multierr.Append(err, client.Close())
		}
		return backend, client.Close, nil

	case config.CartStorageSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrapping database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			return nil, nil, multierr.Append(fmt.Errorf("running migrations: %w", err), client.Close())
		}
		backend, err := storage.NewSQL(client.DB())
		if err != nil {
			return nil, nil, multierr.Append(err, client.Close())
		}
		return backend, client.Close, nil

	default:
		return storage.NewMemory(), noop, nil
	}
}
