package classify

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/dcamposl/uniwabot-go/internal/department"
)

// openaiProvider classifies messages through any OpenAI-compatible
// chat completion API. Groq reuses this implementation with a custom
// base URL.
type openaiProvider struct {
	client openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a provider backed by the OpenAI API.
// Returns nil if apiKey is empty.
func NewOpenAIProvider(apiKey, model string) Provider {
	if apiKey == "" {
		return nil
	}
	return &openaiProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		name:   ProviderOpenAI,
	}
}

// NewGroqProvider creates a provider backed by Groq's OpenAI-compatible API.
// Returns nil if apiKey is empty.
func NewGroqProvider(apiKey, model string) Provider {
	if apiKey == "" {
		return nil
	}
	return &openaiProvider{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(groqEndpoint),
		),
		model: model,
		name:  ProviderGroq,
	}
}

func (p *openaiProvider) Name() string {
	return p.name
}

func (p *openaiProvider) Classify(ctx context.Context, message string) (department.Code, error) {
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(message),
		},
		Temperature: openai.Float(0.1), // consistent classification
		MaxTokens:   openai.Int(16),    // a single department code
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return department.General, err
	}
	if len(resp.Choices) == 0 {
		return department.General, errors.New("empty response from model")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	return department.ParseCode(answer), nil
}
