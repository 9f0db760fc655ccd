// Package main provides the auto-responder server entry point.
package main

import (
	"context"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/bot"
	"github.com/dcamposl/uniwabot-go/internal/conversation"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/monitor"
)

const (
	statsInterval  = time.Hour
	sweepInterval  = time.Hour
	healthInterval = 5 * time.Minute
)

// runStatsJob logs activity counters every hour.
func runStatsJob(ctx context.Context, p *bot.Processor, store *conversation.MemoryStore, log *logger.Logger) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.WithField("messages_today", p.DailyCount()).
				WithField("active_conversations", store.Len()).
				Info("Hourly activity")
		}
	}
}

// runSweepJob drops conversations abandoned mid-flow.
func runSweepJob(ctx context.Context, store *conversation.MemoryStore, log *logger.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := store.Sweep(time.Now()); dropped > 0 {
				log.WithField("dropped", dropped).Info("Swept stale conversations")
			}
		}
	}
}

// runHealthJob runs the monitor's periodic health check.
func runHealthJob(ctx context.Context, mon *monitor.Monitor) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mon.CheckHealth()
		}
	}
}
