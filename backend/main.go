package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"khanmedical/m/internal/api"
	"khanmedical/m/internal/config"
	"khanmedical/m/internal/database"
	"khanmedical/m/internal/metrics"
	"khanmedical/m/internal/migrations"
	"khanmedical/m/internal/pos"
	"khanmedical/m/internal/seed"
	"khanmedical/m/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	gateway := storage.NewSQLGateway(db, cfg.StorageKey, logger)
	store := pos.Open(ctx, gateway, logger, pos.Options{
		OnCheckout: m.Checkout,
		OnReject:   m.Reject,
	})

	if cfg.SeedCSV != "" {
		if _, err := seed.LoadMedicines(ctx, store, cfg.SeedCSV, logger); err != nil {
			logger.Warn("medicine seed skipped", slog.Any("error", err))
		}
	}

	handler := api.New(store, cfg, logger, m)
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Khan Medical POS server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
