package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// IntentClassifier decides whether a message asks for a file.
// Implementations fall back to domain.GeneralIntent on internal failures
// and only return an error when the context is cancelled.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) (domain.Intent, error)
}

// Answerer produces a conversational reply to a general message.
type Answerer interface {
	Answer(ctx context.Context, message string) (string, error)
}
