// Package main provides the auto-responder server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dcamposl/uniwabot-go/internal/config"
	"github.com/dcamposl/uniwabot-go/internal/dashboard"
	"github.com/dcamposl/uniwabot-go/internal/storage"
	"github.com/dcamposl/uniwabot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes.
func setupRoutes(router *gin.Engine, cfg *config.Config, webhookHandler *webhook.Handler, dashboardHandler *dashboard.Handler, db *storage.DB, registry *prometheus.Registry) {
	// Liveness probe. Never checks dependencies, only that the process
	// is serving.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe with a database check.
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Gateway webhook endpoint.
	router.POST("/webhook", webhookHandler.Handle)

	// Dashboard page and its read-only API at the root.
	dashboardHandler.Register(router)

	// Prometheus metrics, behind basic auth when a password is set.
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
