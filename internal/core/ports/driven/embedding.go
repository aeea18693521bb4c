package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, semantic ranking is disabled
// and candidates keep their lexical order.
//
// A single instance is created at start-up and shared; implementations
// must be safe for concurrent use.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Any OpenAI-compatible server (Azure OpenAI, Ollama, LM Studio)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// The result has one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
