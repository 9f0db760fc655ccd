// Package main provides the auto-responder server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dcamposl/uniwabot-go/internal/bot"
	"github.com/dcamposl/uniwabot-go/internal/classify"
	"github.com/dcamposl/uniwabot-go/internal/config"
	"github.com/dcamposl/uniwabot-go/internal/conversation"
	"github.com/dcamposl/uniwabot-go/internal/dashboard"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
	"github.com/dcamposl/uniwabot-go/internal/monitor"
	"github.com/dcamposl/uniwabot-go/internal/sentry"
	"github.com/dcamposl/uniwabot-go/internal/storage"
	"github.com/dcamposl/uniwabot-go/internal/transport"
	"github.com/dcamposl/uniwabot-go/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting WhatsApp auto-responder")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	}

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Error("Failed to open database")
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	mon := monitor.New(log, m)

	chain, err := classify.NewChainFromConfig(context.Background(), cfg.LLM, log, m)
	if err != nil {
		log.WithError(err).Error("Failed to build classification chain")
		os.Exit(1)
	}
	if chain == nil {
		log.Warn("No LLM provider configured, keyword-only classification")
	}
	classifier := classify.New(chain, log, m)

	gateway := transport.NewGateway(cfg.GatewayURL, cfg.GatewayToken, config.GatewaySend, m)
	store := conversation.NewMemoryStore()

	processor := bot.New(bot.Deps{
		Config:     cfg,
		Logger:     log,
		Metrics:    m,
		Monitor:    mon,
		Transport:  gateway,
		Classifier: classifier,
		Store:      store,
		DB:         db,
	})

	webhookHandler := webhook.NewHandler(cfg.GatewayToken, log, m, processor)
	dashboardHandler := dashboard.NewHandler(db, log)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, cfg, webhookHandler, dashboardHandler, db, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.HTTPRead,
		WriteTimeout: config.HTTPWrite,
		IdleTimeout:  config.HTTPIdle,
	}

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	group, groupCtx := errgroup.WithContext(jobCtx)
	group.Go(func() error {
		runStatsJob(groupCtx, processor, store, log)
		return nil
	})
	group.Go(func() error {
		runSweepJob(groupCtx, store, log)
		return nil
	})
	group.Go(func() error {
		runHealthJob(groupCtx, mon)
		return nil
	})

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancelJobs()
	if err := group.Wait(); err != nil {
		log.WithError(err).Warn("Background job returned an error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := webhookHandler.Wait(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timeout waiting for in-flight messages")
	}

	snap := mon.Stats()
	log.WithField("uptime", snap.Uptime.Round(time.Second).String()).
		WithField("total_sent", snap.TotalSent).
		WithField("total_failed", snap.TotalFailed).
		Info("Final activity summary")

	sentry.Flush(2 * time.Second)
	if err := log.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush logs: %v\n", err)
	}
	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
}
