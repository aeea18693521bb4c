package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure TokenProvider implements the interface.
var _ driven.TokenSource = (*TokenProvider)(nil)

// refreshBuffer renews tokens this long before they expire.
const refreshBuffer = 5 * time.Minute

// TokenProvider renews bearer tokens silently from the token cache.
// Concurrent refreshes of one account are coalesced into a single call
// to the token endpoint.
type TokenProvider struct {
	store      driven.TokenCacheStore
	config     *oauth2.Config
	httpClient *http.Client
	group      singleflight.Group

	mu     sync.RWMutex
	cached map[string]domain.CachedAccount
}

// NewTokenProvider creates a token provider. httpClient may be nil to use
// the default client.
func NewTokenProvider(store driven.TokenCacheStore, config *oauth2.Config, httpClient *http.Client) *TokenProvider {
	return &TokenProvider{
		store:      store,
		config:     config,
		httpClient: httpClient,
		cached:     make(map[string]domain.CachedAccount),
	}
}

// Token returns a valid access token for the account, refreshing when the
// cached one is about to expire. Returns "" when the account has no
// usable credential.
func (p *TokenProvider) Token(ctx context.Context, accountID string) (string, error) {
	// Fast path: in-process cache
	p.mu.RLock()
	account, ok := p.cached[accountID]
	p.mu.RUnlock()
	if ok && account.ValidFor(refreshBuffer) {
		return account.AccessToken, nil
	}

	cache, err := p.store.Load(ctx, accountID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("load token cache: %w", err)
	}
	if primary := cache.Primary(); primary != nil && primary.ValidFor(refreshBuffer) {
		p.remember(accountID, *primary)
		return primary.AccessToken, nil
	}

	return p.Refresh(ctx, accountID)
}

// Refresh renews the access token of the account's first cached account
// and persists the rotated credential.
//
// Returns "" and a nil error when nothing is cached or the identity
// provider refuses the refresh token.
func (p *TokenProvider) Refresh(ctx context.Context, accountID string) (string, error) {
	v, err, shared := p.group.Do(accountID, func() (any, error) {
		return p.refresh(ctx, accountID)
	})
	if shared {
		logger.Debug("Joined in-flight token refresh for %q", accountID)
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (p *TokenProvider) refresh(ctx context.Context, accountID string) (string, error) {
	cache, err := p.store.Load(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("No token cache for %q", accountID)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token cache: %w", err)
	}

	account := cache.Primary()
	if account == nil || !account.HasRefreshToken() {
		logger.Debug("No cached account for %q", accountID)
		return "", nil
	}

	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	tok, err := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: account.RefreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			logger.Warn("Silent token renewal refused for %q: %s", accountID, retrieveErr.ErrorCode)
			p.forget(accountID)
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}
	if tok.AccessToken == "" {
		return "", nil
	}

	cache.Accounts[0] = accountFromToken(*account, tok)
	cache.UpdatedAt = time.Now()
	if err := p.store.Save(ctx, *cache); err != nil {
		return "", fmt.Errorf("save token cache: %w", err)
	}

	p.remember(accountID, cache.Accounts[0])
	logger.Info("Renewed access token for %q", accountID)
	return tok.AccessToken, nil
}

func (p *TokenProvider) remember(accountID string, account domain.CachedAccount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached[accountID] = account
}

func (p *TokenProvider) forget(accountID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cached, accountID)
}
