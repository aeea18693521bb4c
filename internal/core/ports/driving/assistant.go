package driving

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// AssistantService answers one user message: either a ranked list of
// files or a conversational reply.
type AssistantService interface {
	Handle(ctx context.Context, session *domain.Session, message string, opts domain.SearchOptions) (*domain.Reply, error)
}
