// Package metrics defines the Prometheus instrumentation for the bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Message pipeline metrics
	MessagesReceivedTotal  *prometheus.CounterVec
	MessagesProcessedTotal *prometheus.CounterVec
	ProcessDurationSeconds *prometheus.HistogramVec

	// Classification metrics
	ClassificationsTotal       *prometheus.CounterVec
	ClassifyDurationSeconds    *prometheus.HistogramVec
	LLMProviderFallbacksTotal  *prometheus.CounterVec
	ClassifyProviderUsedTotal  *prometheus.CounterVec

	// Anti-block metrics
	RateLimitDroppedTotal *prometheus.CounterVec
	DelayAppliedSeconds   *prometheus.HistogramVec
	OffHoursTotal         prometheus.Counter

	// Conversation metrics
	IdentityParseTotal  *prometheus.CounterVec
	RedirectsTotal      *prometheus.CounterVec
	DuplicatesDropped   prometheus.Counter

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayDurationSeconds *prometheus.HistogramVec

	// Webhook metrics
	WebhookRequestsTotal *prometheus.CounterVec

	// Monitor metrics
	AlertsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		MessagesReceivedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_messages_received_total",
				Help: "Total inbound messages by kind",
			},
			[]string{"kind"}, // kind: text, empty, group, own
		),

		MessagesProcessedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_messages_processed_total",
				Help: "Total processed messages by outcome",
			},
			[]string{"outcome"}, // outcome: redirected, awaiting_identity, rate_limited, off_hours, duplicate, error
		),

		ProcessDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uniwabot_process_duration_seconds",
				Help:    "End to end message processing duration including delays",
				Buckets: []float64{0.5, 1, 2, 5, 10, 15, 30, 60}, // delays dominate
			},
			[]string{"outcome"},
		),

		ClassificationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_classifications_total",
				Help: "Total classifications by department and method",
			},
			[]string{"department", "method"}, // method: keyword, llm, fallback
		),

		ClassifyDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uniwabot_classify_duration_seconds",
				Help:    "Classification duration in seconds by method",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"method"},
		),

		LLMProviderFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_llm_provider_fallbacks_total",
				Help: "Total times a provider failed and the next one was tried",
			},
			[]string{"provider"},
		),

		ClassifyProviderUsedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_classify_provider_used_total",
				Help: "Total successful classifications by provider",
			},
			[]string{"provider"},
		),

		RateLimitDroppedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_rate_limit_dropped_total",
				Help: "Total messages dropped by send caps",
			},
			[]string{"limit"}, // limit: daily, hourly, sender
		),

		DelayAppliedSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uniwabot_delay_applied_seconds",
				Help:    "Human plausible delay applied before sending by phase",
				Buckets: []float64{0.5, 1, 2, 3, 4, 5, 6, 8},
			},
			[]string{"phase"}, // phase: read, typing
		),

		OffHoursTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "uniwabot_off_hours_total",
				Help: "Total messages answered with the closed notice",
			},
		),

		IdentityParseTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_identity_parse_total",
				Help: "Total identity parse attempts by result",
			},
			[]string{"result"}, // result: valid, invalid
		),

		RedirectsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_redirects_total",
				Help: "Total redirects issued by department",
			},
			[]string{"department"},
		),

		DuplicatesDropped: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "uniwabot_duplicates_dropped_total",
				Help: "Total inbound messages suppressed as duplicates",
			},
		),

		GatewayRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_gateway_requests_total",
				Help: "Total gateway calls by endpoint and status",
			},
			[]string{"endpoint", "status"}, // status: success, error
		),

		GatewayDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uniwabot_gateway_duration_seconds",
				Help:    "Gateway call duration in seconds by endpoint",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"endpoint"},
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_webhook_requests_total",
				Help: "Total webhook requests by status",
			},
			[]string{"status"}, // status: accepted, rejected
		),

		AlertsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "uniwabot_alerts_total",
				Help: "Total health alerts raised by type and severity",
			},
			[]string{"type", "severity"},
		),
	}

	return m
}
