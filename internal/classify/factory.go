package classify

import (
	"context"
	"fmt"

	"github.com/dcamposl/uniwabot-go/internal/config"
	"github.com/dcamposl/uniwabot-go/internal/logger"
	"github.com/dcamposl/uniwabot-go/internal/metrics"
)

// NewChainFromConfig builds the provider chain in the configured order.
// Providers without an API key are skipped. Returns nil when no
// provider is usable, which disables LLM classification.
func NewChainFromConfig(ctx context.Context, cfg config.LLMConfig, log *logger.Logger, m *metrics.Metrics) (*Chain, error) {
	providers := make([]Provider, 0, len(cfg.Providers))

	for _, name := range cfg.Providers {
		switch name {
		case ProviderOpenAI:
			if cfg.OpenAIAPIKey == "" {
				continue
			}
			providers = append(providers, NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel))
		case ProviderGemini:
			if cfg.GeminiAPIKey == "" {
				continue
			}
			p, err := NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return nil, fmt.Errorf("gemini provider: %w", err)
			}
			providers = append(providers, p)
		case ProviderGroq:
			if cfg.GroqAPIKey == "" {
				continue
			}
			providers = append(providers, NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel))
		default:
			return nil, fmt.Errorf("unknown classification provider: %s", name)
		}
	}

	if len(providers) == 0 {
		return nil, nil
	}

	retry := RetryConfig{
		MaxAttempts:  cfg.MaxAttempts,
		InitialDelay: cfg.InitialDelay,
		MaxDelay:     cfg.MaxRetryDelay,
	}
	return NewChain(providers, retry, log, m), nil
}
