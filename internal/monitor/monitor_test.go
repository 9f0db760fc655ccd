package monitor

import (
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

func testMonitor(t *testing.T, now *time.Time) *Monitor {
	t.Helper()
	log := logger.NewWithWriter("error", io.Discard)
	m := metrics.New(prometheus.NewRegistry())
	return newWithClock(log, m, func() time.Time { return *now })
}

func TestSeverityOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeverityHigh, SeverityOf(AlertHighFailureRate))
	assert.Equal(t, SeverityMedium, SeverityOf(AlertNoActivity))
	assert.Equal(t, SeverityMedium, SeverityOf(AlertRateLimitApproaching))
	assert.Equal(t, SeverityHigh, SeverityOf(AlertUnusualPattern))
	assert.Equal(t, SeverityCritical, SeverityOf(AlertConnectionLost))
	assert.Equal(t, SeverityCritical, SeverityOf(AlertVerificationRequest))
	assert.Equal(t, SeverityLow, SeverityOf(AlertType("SOMETHING_ELSE")))
}

func TestHighFailureRateAlert(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mon := testMonitor(t, &now)

	// 9 successes then 1 failure keeps the rate at exactly 10%.
	for i := 0; i < 9; i++ {
		mon.RecordSent()
	}
	mon.RecordFailure()
	assert.Empty(t, mon.Alerts(), "10%% failure rate should not alert")

	// A second failure pushes it over the threshold.
	mon.RecordFailure()
	alerts := mon.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertHighFailureRate, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
}

func TestAlertCooldown(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mon := testMonitor(t, &now)

	mon.Raise(AlertConnectionLost, "gateway unreachable")
	mon.Raise(AlertConnectionLost, "gateway unreachable")
	assert.Len(t, mon.Alerts(), 1, "repeat within cooldown should be suppressed")

	now = now.Add(alertCooldown + time.Second)
	mon.Raise(AlertConnectionLost, "gateway unreachable")
	assert.Len(t, mon.Alerts(), 2)
}

func TestCheckHealthNoActivity(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mon := testMonitor(t, &now)

	// No traffic yet, silence is expected.
	mon.CheckHealth()
	assert.Empty(t, mon.Alerts())

	mon.RecordSent()
	now = now.Add(31 * time.Minute)
	mon.CheckHealth()

	alerts := mon.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertNoActivity, alerts[0].Type)
	assert.Equal(t, SeverityMedium, alerts[0].Severity)
}

func TestStatsSnapshot(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	mon := testMonitor(t, &now)

	mon.RecordSent()
	mon.RecordSent()
	mon.RecordFailure()
	now = now.Add(2 * time.Hour)

	snap := mon.Stats()
	assert.Equal(t, int64(2), snap.TotalSent)
	assert.Equal(t, int64(1), snap.TotalFailed)
	assert.Equal(t, 2*time.Hour, snap.Uptime)
}
