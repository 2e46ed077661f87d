package llm

import "context"

// Response contains a generation result
type Response struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for generative-text providers. The rest of
// the system treats the returned text as opaque.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// GenerateText produces a single text blob for the prompt
	GenerateText(ctx context.Context, prompt string) (*Response, error)
}
