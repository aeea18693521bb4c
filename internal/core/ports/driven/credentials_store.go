package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// TokenCacheStore persists cached refresh credentials keyed by account identifier.
// Access is scoped per refresh attempt: load, modify, save.
type TokenCacheStore interface {
	// Load retrieves the cache for an account.
	// Returns domain.ErrNotFound if none exists.
	Load(ctx context.Context, accountID string) (*domain.TokenCache, error)

	// Save stores the cache. Creates if new, replaces if it exists.
	Save(ctx context.Context, cache domain.TokenCache) error

	// Delete removes the cache for an account.
	Delete(ctx context.Context, accountID string) error

	// List returns the account identifiers with a stored cache.
	List(ctx context.Context) ([]string, error)
}
