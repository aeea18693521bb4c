package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// Ensure TokenCacheStore implements the interface.
var _ driven.TokenCacheStore = (*TokenCacheStore)(nil)

// TokenCacheStore is an in-memory implementation of driven.TokenCacheStore.
type TokenCacheStore struct {
	mu     sync.RWMutex
	caches map[string]domain.TokenCache
}

// NewTokenCacheStore creates a new in-memory token cache store.
func NewTokenCacheStore() *TokenCacheStore {
	return &TokenCacheStore{
		caches: make(map[string]domain.TokenCache),
	}
}

// Load retrieves the cache for an account.
func (s *TokenCacheStore) Load(_ context.Context, accountID string) (*domain.TokenCache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cache, ok := s.caches[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cache.Accounts = append([]domain.CachedAccount(nil), cache.Accounts...)
	return &cache, nil
}

// Save stores or replaces a cache.
func (s *TokenCacheStore) Save(_ context.Context, cache domain.TokenCache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache.Accounts = append([]domain.CachedAccount(nil), cache.Accounts...)
	s.caches[cache.AccountID] = cache
	return nil
}

// Delete removes a cache.
func (s *TokenCacheStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.caches, accountID)
	return nil
}

// List returns the stored account identifiers, sorted.
func (s *TokenCacheStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.caches))
	for id := range s.caches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
