package driven

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// TokenRefresher renews the bearer token of an account from its cached credential.
//
// Refresh returns an empty token and a nil error when no cached account
// exists or silent renewal yields no access token. That outcome is expected
// and recoverable; callers report an authentication failure rather than retry.
type TokenRefresher interface {
	Refresh(ctx context.Context, accountID string) (string, error)
}

// TokenSource supplies a valid bearer token for an account, refreshing when
// the cached one has expired. It is used to open a request cycle.
type TokenSource interface {
	TokenRefresher

	// Token returns the cached access token while valid, otherwise refreshes.
	// An empty token means the account has no usable credential.
	Token(ctx context.Context, accountID string) (string, error)
}

// Authorizer signs a user in interactively.
type Authorizer interface {
	// Authorize starts the flow, calls prompt with the page the user must
	// visit and, for the device flow, the code to enter there. It blocks
	// until the user completes sign-in.
	Authorize(ctx context.Context, prompt func(verificationURI, userCode string)) (*domain.CachedAccount, error)
}
