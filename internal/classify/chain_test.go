package classify

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/department"
	apperrors "github.com/dcamposl/uniwabot-go/internal/errors"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

type stubProvider struct {
	name  string
	code  department.Code
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Classify(context.Context, string) (department.Code, error) {
	s.calls++
	if s.err != nil {
		return department.General, s.err
	}
	return s.code, nil
}

func testDeps(t *testing.T) (*logger.Logger, *metrics.Metrics) {
	t.Helper()
	return logger.NewWithWriter("error", io.Discard), metrics.New(prometheus.NewRegistry())
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 2}
}

func TestChainFirstProviderWins(t *testing.T) {
	t.Parallel()

	log, m := testDeps(t)
	first := &stubProvider{name: "openai", code: department.Cajas}
	second := &stubProvider{name: "gemini", code: department.Registro}
	chain := NewChain([]Provider{first, second}, fastRetry(), log, m)

	code, provider, err := chain.Classify(context.Background(), "cuánto debo?")
	require.NoError(t, err)
	assert.Equal(t, department.Cajas, code)
	assert.Equal(t, "openai", provider)
	assert.Zero(t, second.calls)
}

func TestChainFallsBackOnFailure(t *testing.T) {
	t.Parallel()

	log, m := testDeps(t)
	first := &stubProvider{name: "openai", err: errors.New("rate limited")}
	second := &stubProvider{name: "gemini", code: department.Biblioteca}
	chain := NewChain([]Provider{first, second}, fastRetry(), log, m)

	code, provider, err := chain.Classify(context.Background(), "necesito un libro")
	require.NoError(t, err)
	assert.Equal(t, department.Biblioteca, code)
	assert.Equal(t, "gemini", provider)
	assert.Equal(t, 2, first.calls, "failed provider is retried before fallback")
}

func TestChainAllProvidersFail(t *testing.T) {
	t.Parallel()

	log, m := testDeps(t)
	first := &stubProvider{name: "openai", err: errors.New("boom")}
	second := &stubProvider{name: "gemini", err: errors.New("also boom")}
	chain := NewChain([]Provider{first, second}, fastRetry(), log, m)

	code, _, err := chain.Classify(context.Background(), "hola")
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Equal(t, department.General, code)
}

func TestChainRespectsContextCancellation(t *testing.T) {
	t.Parallel()

	log, m := testDeps(t)
	first := &stubProvider{name: "openai", err: errors.New("boom")}
	second := &stubProvider{name: "gemini", code: department.Cajas}
	chain := NewChain([]Provider{first, second}, fastRetry(), log, m)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := chain.Classify(ctx, "pago")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, second.calls)
}

func TestNewChainSkipsNilProviders(t *testing.T) {
	t.Parallel()

	log, m := testDeps(t)
	assert.Nil(t, NewChain([]Provider{nil, nil}, fastRetry(), log, m))

	chain := NewChain([]Provider{nil, &stubProvider{name: "groq", code: department.Cajas}}, fastRetry(), log, m)
	require.NotNil(t, chain)
	assert.Len(t, chain.providers, 1)
}
