package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages cached sign-in state.
type AuthService struct {
	cache      driven.TokenCacheStore
	tokens     driven.TokenSource
	authorizer driven.Authorizer
	profile    driven.ProfileReader
}

// NewAuthService creates an auth service. authorizer and profile may be nil
// when interactive sign-in is not needed.
func NewAuthService(
	cache driven.TokenCacheStore,
	tokens driven.TokenSource,
	authorizer driven.Authorizer,
	profile driven.ProfileReader,
) *AuthService {
	return &AuthService{
		cache:      cache,
		tokens:     tokens,
		authorizer: authorizer,
		profile:    profile,
	}
}

// Login signs an account in and stores its refresh credential.
func (s *AuthService) Login(
	ctx context.Context, accountID string, prompt func(driving.SignInPrompt),
) (*domain.CachedAccount, error) {
	if s.authorizer == nil {
		return nil, fmt.Errorf("%w: interactive sign-in is not configured", domain.ErrInvalidInput)
	}

	account, err := s.authorizer.Authorize(ctx, func(uri, code string) {
		if prompt != nil {
			prompt(driving.SignInPrompt{VerificationURI: uri, UserCode: code})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if s.profile != nil && account.Username == "" {
		email, err := s.profile.UserEmail(ctx, domain.NewSession("", account.AccessToken))
		if err != nil {
			logger.Warn("Could not read profile: %v", err)
		} else {
			account.Username = email
		}
	}

	cache := domain.TokenCache{
		AccountID: accountID,
		Accounts:  []domain.CachedAccount{*account},
		UpdatedAt: time.Now(),
	}
	if err := s.cache.Save(ctx, cache); err != nil {
		return nil, fmt.Errorf("save token cache: %w", err)
	}

	logger.Info("Signed in %s as %q", account.Username, accountID)
	return account, nil
}

// Status returns the primary cached account.
func (s *AuthService) Status(ctx context.Context, accountID string) (*domain.CachedAccount, error) {
	cache, err := s.cache.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account := cache.Primary()
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

// Logout removes the cached credential.
func (s *AuthService) Logout(ctx context.Context, accountID string) error {
	if err := s.cache.Delete(ctx, accountID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// OpenSession returns a session with a valid token for the account.
func (s *AuthService) OpenSession(ctx context.Context, accountID string) (*domain.Session, error) {
	token, err := s.tokens.Token(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthRequired, err)
	}
	if token == "" {
		return nil, domain.ErrAuthRequired
	}
	return domain.NewSession(accountID, token), nil
}
