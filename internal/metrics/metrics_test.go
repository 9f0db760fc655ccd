package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)
	require.NotNil(t, m)

	assert.NotNil(t, m.MessagesReceivedTotal)
	assert.NotNil(t, m.MessagesProcessedTotal)
	assert.NotNil(t, m.ProcessDurationSeconds)
	assert.NotNil(t, m.ClassificationsTotal)
	assert.NotNil(t, m.ClassifyDurationSeconds)
	assert.NotNil(t, m.LLMProviderFallbacksTotal)
	assert.NotNil(t, m.RateLimitDroppedTotal)
	assert.NotNil(t, m.DelayAppliedSeconds)
	assert.NotNil(t, m.OffHoursTotal)
	assert.NotNil(t, m.IdentityParseTotal)
	assert.NotNil(t, m.RedirectsTotal)
	assert.NotNil(t, m.DuplicatesDropped)
	assert.NotNil(t, m.GatewayRequestsTotal)
	assert.NotNil(t, m.WebhookRequestsTotal)
	assert.NotNil(t, m.AlertsTotal)
}

func TestRecordClassification(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordClassification("CAJAS", "keyword", time.Millisecond)
	m.RecordClassification("CAJAS", "keyword", time.Millisecond)
	m.RecordClassification("GENERAL", "llm", 2*time.Second)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ClassificationsTotal.WithLabelValues("CAJAS", "keyword")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ClassificationsTotal.WithLabelValues("GENERAL", "llm")))
}

func TestRecordRateLimitDrop(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordRateLimitDrop("daily")
	m.RecordRateLimitDrop("sender")
	m.RecordRateLimitDrop("sender")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitDroppedTotal.WithLabelValues("daily")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RateLimitDroppedTotal.WithLabelValues("sender")))
}

func TestRecordIdentityParse(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordIdentityParse(true)
	m.RecordIdentityParse(false)
	m.RecordIdentityParse(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.IdentityParseTotal.WithLabelValues("valid")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.IdentityParseTotal.WithLabelValues("invalid")))
}

func TestRecordHelpersDoNotPanic(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.RecordReceived("text")
	m.RecordProcessed("redirected", 5*time.Second)
	m.RecordProviderFallback("openai")
	m.RecordProviderUsed("gemini")
	m.RecordDelay("read", 1500*time.Millisecond)
	m.RecordRedirect("BIBLIOTECA")
	m.RecordGatewayRequest("/send", "success", 200*time.Millisecond)
	m.RecordAlert("HIGH_FAILURE_RATE", "CRITICAL")
	m.OffHoursTotal.Inc()
	m.DuplicatesDropped.Inc()
}
