package driven

import "context"

// LLMService provides language model chat completions.
// This is an optional service - when nil, intent classification falls back
// to keyword shortcuts and general messages get a canned reply.
//
// Implementations may include:
//   - OpenAI (GPT-4o, GPT-4)
//   - Any OpenAI-compatible server (Azure OpenAI, Ollama, LM Studio)
type LLMService interface {
	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// JSON requests a JSON object response.
	JSON bool
}
