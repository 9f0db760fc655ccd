package metrics

import "time"

// RecordReceived increments the inbound counter for the given kind.
func (m *Metrics) RecordReceived(kind string) {
	m.MessagesReceivedTotal.WithLabelValues(kind).Inc()
}

// RecordProcessed records a finished message with its outcome and duration.
func (m *Metrics) RecordProcessed(outcome string, duration time.Duration) {
	m.MessagesProcessedTotal.WithLabelValues(outcome).Inc()
	m.ProcessDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordClassification records a classification result.
func (m *Metrics) RecordClassification(department, method string, duration time.Duration) {
	m.ClassificationsTotal.WithLabelValues(department, method).Inc()
	m.ClassifyDurationSeconds.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordProviderFallback increments the fallback counter for a failed provider.
func (m *Metrics) RecordProviderFallback(provider string) {
	m.LLMProviderFallbacksTotal.WithLabelValues(provider).Inc()
}

// RecordProviderUsed increments the success counter for a provider.
func (m *Metrics) RecordProviderUsed(provider string) {
	m.ClassifyProviderUsedTotal.WithLabelValues(provider).Inc()
}

// RecordRateLimitDrop records a message dropped by the named cap.
func (m *Metrics) RecordRateLimitDrop(limit string) {
	m.RateLimitDroppedTotal.WithLabelValues(limit).Inc()
}

// RecordDelay records an applied delay for the given phase.
func (m *Metrics) RecordDelay(phase string, d time.Duration) {
	m.DelayAppliedSeconds.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordIdentityParse records an identity parse attempt.
func (m *Metrics) RecordIdentityParse(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.IdentityParseTotal.WithLabelValues(result).Inc()
}

// RecordRedirect records a redirect issued to a department.
func (m *Metrics) RecordRedirect(department string) {
	m.RedirectsTotal.WithLabelValues(department).Inc()
}

// RecordGatewayRequest records a gateway call.
func (m *Metrics) RecordGatewayRequest(endpoint, status string, duration time.Duration) {
	m.GatewayRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.GatewayDurationSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordAlert records a raised health alert.
func (m *Metrics) RecordAlert(alertType, severity string) {
	m.AlertsTotal.WithLabelValues(alertType, severity).Inc()
}
