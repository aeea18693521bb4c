package driving

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// SearchService locates files across personal and shared storage.
type SearchService interface {
	// Search runs the federated discovery pipeline for one query and
	// returns files ranked by semantic similarity. Per-container failures
	// shrink the result set; only a missing credential is an error.
	Search(ctx context.Context, session *domain.Session, query string) ([]domain.File, error)

	// Collect returns the unranked, folder-free candidates for a query,
	// falling back to recent files when nothing matched.
	Collect(ctx context.Context, session *domain.Session, query string) ([]domain.File, error)

	// CollectHits is Collect without the recent-files fallback.
	CollectHits(ctx context.Context, session *domain.Session, query string) ([]domain.File, error)

	// Recent returns the caller's recently used files.
	Recent(ctx context.Context, session *domain.Session) ([]domain.File, error)
}
