package llm

import "context"

// Message roles understood by every provider
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat conversation
type Message struct {
	Role    string
	Content string
}

// Request contains chat generation parameters
type Request struct {
	System      string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// Response contains LLM generation result
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Generate produces the next assistant message
	Generate(ctx context.Context, req Request, model string) (*Response, error)
}
