// Package classify routes inbound messages to a department.
// Keyword matching runs first; when no keyword hits, the message is
// delegated to an LLM provider chain. Classification is total: any
// failure degrades to the General code, never an error.
package classify

import (
	"context"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/department"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

// Method labels how a classification was decided.
type Method string

// Classification methods, also used as metric labels.
const (
	MethodKeyword  Method = "keyword"
	MethodLLM      Method = "llm"
	MethodFallback Method = "fallback"
)

// Result is a classification outcome.
type Result struct {
	Department department.Code
	Method     Method
	Provider   string // LLM provider that answered, empty for keyword matches
}

// Classifier combines the keyword matcher with an optional LLM chain.
type Classifier struct {
	chain   *Chain
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New creates a Classifier. chain may be nil when no LLM provider is
// configured; unmatched messages then degrade to General.
func New(chain *Chain, log *logger.Logger, m *metrics.Metrics) *Classifier {
	return &Classifier{
		chain:   chain,
		log:     log.WithModule("classify"),
		metrics: m,
	}
}

// Classify determines the department for a message. It never fails:
// keyword match first, then the LLM chain, then General.
func (c *Classifier) Classify(ctx context.Context, message string) Result {
	start := time.Now()

	if code, ok := MatchKeyword(message); ok {
		c.metrics.RecordClassification(code.String(), string(MethodKeyword), time.Since(start))
		return Result{Department: code, Method: MethodKeyword}
	}

	if c.chain != nil {
		code, provider, err := c.chain.Classify(ctx, message)
		if err == nil {
			c.metrics.RecordClassification(code.String(), string(MethodLLM), time.Since(start))
			c.metrics.RecordProviderUsed(provider)
			return Result{Department: code, Method: MethodLLM, Provider: provider}
		}
		c.log.WithError(err).WarnContext(ctx, "llm classification failed, degrading to general")
	}

	c.metrics.RecordClassification(department.General.String(), string(MethodFallback), time.Since(start))
	return Result{Department: department.General, Method: MethodFallback}
}
