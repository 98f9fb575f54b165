package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"GoldSync/internal/calculator"
	"GoldSync/internal/catalog"
	"GoldSync/internal/collector"
	"GoldSync/internal/config"
	"GoldSync/internal/logging"
	"GoldSync/internal/pricing"
	"GoldSync/internal/recorder"
	"GoldSync/internal/scheduler"
	"GoldSync/internal/state"
	"GoldSync/internal/status"
	"GoldSync/internal/syncer"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Fatalf("load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("init logger: %v", err)
	}
	logger.Info("GoldSync starting...")

	// Quote feed
	fetcher := collector.NewFeedFetcher(cfg.Quote.URLTemplate, cfg.Quote.APIKey, cfg.Proxy, cfg.QuoteTimeout())
	logger.WithField("source", fetcher.Name()).Info("quote source configured")

	// Catalog service
	cat := catalog.NewClient(catalog.Options{
		BaseURL:           cfg.Catalog.BaseURL,
		Token:             cfg.Catalog.APIToken,
		LocationID:        cfg.Catalog.LocationID,
		APIVersion:        cfg.Catalog.APIVersion,
		Timeout:           cfg.CatalogTimeout(),
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
		ProxyURL:          cfg.Proxy,
	})

	pricer := calculator.Pricer{MarkupRate: *cfg.Pricing.MarkupRate, TaxRate: *cfg.Pricing.TaxRate}
	eval := pricing.NewEvaluator(cfg.Pricing.Marker, pricer)

	tracker := state.NewTracker()
	rec := recorder.NewMemoryRecorder(cfg.Sync.HistorySize)
	defer rec.Close()

	svc := syncer.New(fetcher, cat, eval, tracker, rec, logger, syncer.Options{
		ResolvePrices: *cfg.Catalog.ResolvePrices,
		Workers:       cfg.Sync.Workers,
	})

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, svc, cfg.Interval(), logger)
	if err := sched.Register(); err != nil {
		logger.Fatalf("register sync task: %v", err)
	}
	sched.Start()

	if *cfg.Sync.RunOnStart {
		logger.Info("running initial sync")
		go sched.RunNow()
	}

	// Status endpoint
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           status.NewRouter(status.NewHandler(tracker, rec)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.WithField("addr", srv.Addr).Info("status server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("status server: %v", err)
		}
	}()

	logger.WithField("interval", cfg.Interval()).Info("GoldSync is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("status server shutdown")
	}
	sched.Stop(cfg.ShutdownTimeout())
	logger.Info("GoldSync stopped")
}
