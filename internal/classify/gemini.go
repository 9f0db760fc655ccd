package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dcamposl/uniwabot-go/internal/department"
)

// geminiProvider classifies messages through the Gemini API.
type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a provider backed by Gemini.
// Returns nil if apiKey is empty.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Name() string {
	return ProviderGemini
}

func (p *geminiProvider) Classify(ctx context.Context, message string) (department.Code, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.1), // consistent classification
		MaxOutputTokens:   16,
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(message), config)
	if err != nil {
		return department.General, err
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return department.General, errors.New("empty response from model")
	}
	return department.ParseCode(answer), nil
}
