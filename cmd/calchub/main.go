// Package main is the entry point for the CalcHub API server.
// It wires all dependencies together and starts the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/easycalchub/calchub/internal/catalog"
	"github.com/easycalchub/calchub/internal/config"
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/internal/history"
	"github.com/easycalchub/calchub/internal/observability"
	"github.com/easycalchub/calchub/internal/openapi"
	"github.com/easycalchub/calchub/internal/present"
	"github.com/easycalchub/calchub/internal/rates"
	"github.com/easycalchub/calchub/internal/transport"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc1234"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Step 1: Parse CLI flags.
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	// Step 2: Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	// Step 3: Initialize telemetry (logger, tracer, metrics).
	observability.Version = version
	observability.Commit = commit

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	tracingShutdown, err := observability.InitTracing(ctx, cfg.Observability.Tracing, "calchub", version)
	if err != nil {
		logger.Error("tracing initialization failed", zap.Error(err))
		return 1
	}

	// Step 4: Load the tax regime tables and build the catalogue.
	taxes, err := engine.LoadTaxTable(cfg.Catalog.TaxRegimesFile)
	if err != nil {
		logger.Error("tax regime load failed", zap.Error(err))
		return 1
	}

	registry, err := catalog.NewRegistry(catalog.Definitions(taxes))
	if err != nil {
		logger.Error("catalogue build failed", zap.Error(err))
		return 1
	}

	formatter := present.NewFormatter(cfg.Presentation.DefaultLocale, cfg.Presentation.CurrencySymbol)

	// Step 5: Load and validate the API document.
	doc, err := openapi.Load(ctx, "api/openapi.yaml")
	if err != nil {
		logger.Error("OpenAPI document load failed", zap.Error(err))
		return 1
	}

	// Step 6: Register metrics. The snapshot-age gauge reads through a
	// pointer that is only assigned when rates are enabled.
	var ratesSvc *rates.Service
	metricsOpts := observability.MetricsOptions{}
	if cfg.Rates.Enabled {
		metricsOpts.RateSnapshotAge = func() float64 {
			if ratesSvc == nil {
				return 0
			}
			return ratesSvc.SnapshotAge().Seconds()
		}
	}
	metrics := observability.InitMetrics(prometheus.DefaultRegisterer, metricsOpts)
	metrics.SetCalculatorsLoaded(registry.Len())
	metrics.RecordCatalogueReload("success")

	// Step 7: Initialize the history store.
	historyStore, historyCloser, err := buildHistoryStore(ctx, cfg.History, logger)
	if err != nil {
		logger.Error("history store initialization failed", zap.Error(err))
		return 1
	}
	historySvc := history.NewService(historyStore, logger, metrics)

	// Step 8: Initialize the live rates service (optional).
	var ratesCloser func()
	if cfg.Rates.Enabled {
		ratesSvc, ratesCloser = buildRatesService(cfg.Rates, logger, metrics)
		ratesSvc.Start(ctx)
	}

	// Step 9: Build readiness checks from data known at startup.
	readinessChecks := observability.ReadinessChecks{
		CatalogueLoaded: func() bool { return registry.Len() > 0 },
		TaxTablesLoaded: func() bool { return len(taxes.IDs()) > 0 },
		HistoryStore:    historySvc,
	}
	if ratesSvc != nil {
		readinessChecks.RatesFresh = ratesSvc.Ready
	}

	// Step 10: Build the HTTP router.
	router := transport.NewRouter(transport.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Formatter: formatter,
		History:   historySvc,
		Rates:     ratesSvc,
		Metrics:   metrics,
		Ready:     observability.HandleReady(readinessChecks),
		OpenAPI:   doc.Handler(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Step 11: Start the HTTP server.
	logger.Info("server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("version", version),
		zap.String("commit", commit),
		zap.Int("calculators", registry.Len()),
		zap.String("catalogue_checksum", registry.Checksum()),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error.
	select {
	case <-ctx.Done():
		logger.Info("shutdown initiated")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		return 1
	}

	// Graceful shutdown sequence.
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Stop accepting new connections and drain in-flight requests.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// Close stores and clients.
	if historyCloser != nil {
		historyCloser()
	}
	if ratesCloser != nil {
		ratesCloser()
	}

	// Flush telemetry.
	if err := tracingShutdown(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return 0
}

// buildHistoryStore creates the history store based on config. The closer is
// nil for stores that hold no external connections.
func buildHistoryStore(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (history.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		logger.Info("using in-memory history store")
		return history.NewMemoryStore(), nil, nil
	case "file", "":
		logger.Info("using file history store", zap.String("path", cfg.FilePath))
		return history.NewFileStore(cfg.FilePath, logger), nil, nil
	case "postgres":
		dsn := os.Getenv(cfg.DSNEnv)
		if dsn == "" {
			return nil, nil, fmt.Errorf("history store: %s environment variable not set", cfg.DSNEnv)
		}

		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("history store: parse DSN: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("history store: connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("history store: ping: %w", err)
		}

		logger.Info("using postgres history store")
		return history.NewPgStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported history store driver: %q", cfg.Driver)
	}
}

// buildRatesService creates the rates service with its upstream sources and
// the optional redis snapshot tier.
func buildRatesService(cfg config.RatesConfig, logger *zap.Logger, metrics *observability.Metrics) (*rates.Service, func()) {
	fiat := rates.NewFiatSource(cfg.FiatURL, cfg.FetchTimeout)
	crypto := rates.NewCryptoSource(cfg.CryptoURL, cfg.FetchTimeout)

	opts := rates.Options{
		PollInterval: cfg.PollInterval,
		MaxAge:       cfg.MaxAge,
		Metrics:      metrics,
	}

	var closer func()
	if cfg.Cache.Enabled {
		addr := os.Getenv(cfg.Cache.AddrEnv)
		if addr == "" {
			logger.Warn("rate cache enabled but address not configured",
				zap.String("env", cfg.Cache.AddrEnv))
		} else {
			client := redis.NewClient(&redis.Options{Addr: addr, DB: cfg.Cache.DB})
			opts.Cache = rates.NewCache(client, cfg.Cache.TTL)
			closer = func() { client.Close() }
			logger.Info("rate snapshot cache enabled", zap.String("addr", addr))
		}
	}

	return rates.NewService(fiat, crypto, logger, opts), closer
}
