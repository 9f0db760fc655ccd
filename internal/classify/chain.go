package classify

import (
	"context"
	"fmt"

	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/errors"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

// Chain tries LLM providers in order with per-provider retry.
// Context cancellation aborts the whole chain.
type Chain struct {
	providers []Provider
	retry     RetryConfig
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewChain creates a Chain, skipping nil providers.
func NewChain(providers []Provider, retry RetryConfig, log *logger.Logger, m *metrics.Metrics) *Chain {
	filtered := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = 1
	}
	return &Chain{
		providers: filtered,
		retry:     retry,
		log:       log.WithModule("classify"),
		metrics:   m,
	}
}

// Classify runs the provider chain and returns the first successful
// answer along with the provider that produced it.
func (c *Chain) Classify(ctx context.Context, message string) (department.Code, string, error) {
	var lastErr error

	for _, p := range c.providers {
		code, err := c.classifyWithRetry(ctx, p, message)
		if err == nil {
			return code, p.Name(), nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return department.General, "", ctx.Err()
		}

		c.metrics.RecordProviderFallback(p.Name())
		c.log.WithError(err).WithField("provider", p.Name()).
			WarnContext(ctx, "provider failed, trying next")
	}

	return department.General, "", fmt.Errorf("%w: %w", errors.ErrProviderUnavailable, lastErr)
}

func (c *Chain) classifyWithRetry(ctx context.Context, p Provider, message string) (department.Code, error) {
	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if err := Sleep(ctx, CalculateBackoff(attempt, c.retry.InitialDelay, c.retry.MaxDelay)); err != nil {
			return department.General, err
		}

		code, err := p.Classify(ctx, message)
		if err == nil {
			return code, nil
		}
		lastErr = err
	}

	return department.General, lastErr
}
