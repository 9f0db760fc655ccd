package classify

import (
	"context"

	"github.com/dcamposl/uniwabot-go/internal/department"
)

// Provider names for configuration and metric labels.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// groqEndpoint is Groq's OpenAI-compatible base URL.
const groqEndpoint = "https://api.groq.com/openai/v1"

// Provider classifies a message through one LLM backend.
type Provider interface {
	// Name identifies the provider for logs and metrics.
	Name() string

	// Classify returns the department code for a message. An
	// unrecognized model answer maps to General, not an error;
	// errors mean the request itself failed.
	Classify(ctx context.Context, message string) (department.Code, error)
}
