// Package monitor tracks send activity and raises health alerts when
// the bot shows signs of trouble: failure spikes, silence, lost
// connection, or a verification challenge from the platform.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
	"github.com/dcamposl/uniwabot-go/internal/sentry"
)

// AlertType identifies a category of health alert.
type AlertType string

const (
	AlertHighFailureRate      AlertType = "HIGH_FAILURE_RATE"
	AlertNoActivity           AlertType = "NO_ACTIVITY"
	AlertRateLimitApproaching AlertType = "RATE_LIMIT_APPROACHING"
	AlertUnusualPattern       AlertType = "UNUSUAL_PATTERN"
	AlertConnectionLost       AlertType = "CONNECTION_LOST"
	AlertVerificationRequest  AlertType = "VERIFICATION_REQUEST"
)

// Severity classifies how urgent an alert is.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var severities = map[AlertType]Severity{
	AlertHighFailureRate:      SeverityHigh,
	AlertNoActivity:           SeverityMedium,
	AlertRateLimitApproaching: SeverityMedium,
	AlertUnusualPattern:       SeverityHigh,
	AlertConnectionLost:       SeverityCritical,
	AlertVerificationRequest:  SeverityCritical,
}

// SeverityOf returns the severity for an alert type, SeverityLow when
// the type is unknown.
func SeverityOf(t AlertType) Severity {
	if s, ok := severities[t]; ok {
		return s
	}
	return SeverityLow
}

const (
	// failureRateThreshold raises HIGH_FAILURE_RATE above this share of
	// failed sends.
	failureRateThreshold = 0.1

	// inactivityThreshold raises NO_ACTIVITY after this much silence.
	inactivityThreshold = 30 * time.Minute

	// alertCooldown suppresses repeats of the same alert type.
	alertCooldown = 5 * time.Minute
)

// Alert is one raised health alert.
type Alert struct {
	Type     AlertType
	Severity Severity
	Message  string
	RaisedAt time.Time
}

// Snapshot is a point-in-time view of the monitor's counters.
type Snapshot struct {
	Uptime       time.Duration
	TotalSent    int64
	TotalFailed  int64
	LastActivity time.Time
	AlertCount   int
}

// Monitor accumulates activity counters and raises alerts. Safe for
// concurrent use.
type Monitor struct {
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu           sync.Mutex
	startTime    time.Time
	totalSent    int64
	totalFailed  int64
	lastActivity time.Time
	lastRaised   map[AlertType]time.Time
	alerts       []Alert
}

// New creates a Monitor.
func New(log *logger.Logger, m *metrics.Metrics) *Monitor {
	return newWithClock(log, m, time.Now)
}

func newWithClock(log *logger.Logger, m *metrics.Metrics, now func() time.Time) *Monitor {
	start := now()
	return &Monitor{
		log:        log.WithModule("monitor"),
		metrics:    m,
		now:        now,
		startTime:  start,
		lastRaised: make(map[AlertType]time.Time),
	}
}

// RecordSent counts a successful outbound message.
func (mon *Monitor) RecordSent() {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	mon.totalSent++
	mon.lastActivity = mon.now()
}

// RecordFailure counts a failed outbound message and raises
// HIGH_FAILURE_RATE when more than 10% of sends are failing.
func (mon *Monitor) RecordFailure() {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	mon.totalFailed++

	total := mon.totalSent + mon.totalFailed
	rate := float64(mon.totalFailed) / float64(total)
	if rate > failureRateThreshold {
		mon.raiseLocked(AlertHighFailureRate,
			fmt.Sprintf("%.1f%% of messages failing (%d of %d)", rate*100, mon.totalFailed, total))
	}
}

// Raise records an externally detected alert, e.g. a lost gateway
// connection or a verification challenge.
func (mon *Monitor) Raise(t AlertType, message string) {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	mon.raiseLocked(t, message)
}

// raiseLocked requires mon.mu to be held.
func (mon *Monitor) raiseLocked(t AlertType, message string) {
	now := mon.now()
	if last, ok := mon.lastRaised[t]; ok && now.Sub(last) < alertCooldown {
		return
	}
	mon.lastRaised[t] = now

	severity := SeverityOf(t)
	alert := Alert{Type: t, Severity: severity, Message: message, RaisedAt: now}
	mon.alerts = append(mon.alerts, alert)
	mon.metrics.RecordAlert(string(t), string(severity))

	log := mon.log.WithFields(map[string]any{
		"alert_type": string(t),
		"severity":   string(severity),
	})
	switch severity {
	case SeverityCritical, SeverityHigh:
		log.Error(message)
	default:
		log.Warn(message)
	}

	if severity == SeverityCritical {
		sentry.CaptureMessage(fmt.Sprintf("[%s] %s", t, message))
	}
}

// CheckHealth raises NO_ACTIVITY when the bot has been silent for too
// long and logs a health summary. Meant to run periodically.
func (mon *Monitor) CheckHealth() {
	mon.mu.Lock()
	defer mon.mu.Unlock()

	now := mon.now()
	if mon.totalSent > 0 {
		if inactive := now.Sub(mon.lastActivity); inactive > inactivityThreshold {
			mon.raiseLocked(AlertNoActivity,
				fmt.Sprintf("no activity for %d minutes", int(inactive.Minutes())))
		}
	}

	mon.log.WithFields(map[string]any{
		"uptime":        now.Sub(mon.startTime).Round(time.Second).String(),
		"total_sent":    mon.totalSent,
		"total_failed":  mon.totalFailed,
		"active_alerts": len(mon.alerts),
	}).Info("health summary")
}

// Stats returns a snapshot of the monitor's counters.
func (mon *Monitor) Stats() Snapshot {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	return Snapshot{
		Uptime:       mon.now().Sub(mon.startTime),
		TotalSent:    mon.totalSent,
		TotalFailed:  mon.totalFailed,
		LastActivity: mon.lastActivity,
		AlertCount:   len(mon.alerts),
	}
}

// Alerts returns a copy of all raised alerts, newest last.
func (mon *Monitor) Alerts() []Alert {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	out := make([]Alert, len(mon.alerts))
	copy(out, mon.alerts)
	return out
}
