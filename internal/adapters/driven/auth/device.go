package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// Ensure DeviceAuthorizer implements the interface.
var _ driven.Authorizer = (*DeviceAuthorizer)(nil)

// DeviceAuthorizer signs users in with the OAuth device authorisation grant.
type DeviceAuthorizer struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewDeviceAuthorizer creates a device authorizer. httpClient may be nil.
func NewDeviceAuthorizer(config *oauth2.Config, httpClient *http.Client) *DeviceAuthorizer {
	return &DeviceAuthorizer{config: config, httpClient: httpClient}
}

// Authorize requests a device code, shows it through prompt and polls the
// token endpoint until the user completes sign-in or the code expires.
func (a *DeviceAuthorizer) Authorize(
	ctx context.Context, prompt func(verificationURI, userCode string),
) (*domain.CachedAccount, error) {
	if a.config.ClientID == "" {
		return nil, fmt.Errorf("%w: client id is not configured", domain.ErrInvalidInput)
	}
	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}

	code, err := a.config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("request device code: %w", err)
	}
	if prompt != nil {
		prompt(code.VerificationURI, code.UserCode)
	}

	tok, err := a.config.DeviceAccessToken(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("wait for device sign-in: %w", err)
	}

	account := accountFromToken(domain.CachedAccount{TokenType: "Bearer"}, tok)
	return &account, nil
}
