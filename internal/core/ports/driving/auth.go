package driving

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// SignInPrompt is shown to the user during interactive sign-in.
type SignInPrompt struct {
	// VerificationURI is the page the user must visit.
	VerificationURI string

	// UserCode is the code to enter there. Empty for the browser flow.
	UserCode string
}

// AuthService manages the signed-in account and opens request sessions.
type AuthService interface {
	// Login signs an account in interactively and caches its refresh
	// credential. prompt is called once the sign-in page is known.
	Login(ctx context.Context, accountID string, prompt func(SignInPrompt)) (*domain.CachedAccount, error)

	// Status returns the cached account, or domain.ErrNotFound.
	Status(ctx context.Context, accountID string) (*domain.CachedAccount, error)

	// Logout removes the cached credential of an account.
	Logout(ctx context.Context, accountID string) error

	// OpenSession returns a session carrying a valid bearer token.
	// Returns domain.ErrAuthRequired when the account has no usable credential.
	OpenSession(ctx context.Context, accountID string) (*domain.Session, error)
}
