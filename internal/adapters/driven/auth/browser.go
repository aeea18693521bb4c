package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure BrowserAuthorizer implements the interface.
var _ driven.Authorizer = (*BrowserAuthorizer)(nil)

// defaultBrowserTimeout bounds how long the user has to finish signing in.
const defaultBrowserTimeout = 5 * time.Minute

// BrowserAuthorizer signs users in with the authorisation code grant and
// PKCE, receiving the code on a loopback redirect.
type BrowserAuthorizer struct {
	config     *oauth2.Config
	httpClient *http.Client
	port       int
	timeout    time.Duration
	openURL    func(string) error
}

// BrowserOption configures a BrowserAuthorizer.
type BrowserOption func(*BrowserAuthorizer)

// WithBrowserTimeout sets how long Authorize waits for the redirect.
func WithBrowserTimeout(d time.Duration) BrowserOption {
	return func(a *BrowserAuthorizer) { a.timeout = d }
}

// WithURLOpener replaces the function that opens the sign-in page.
func WithURLOpener(open func(string) error) BrowserOption {
	return func(a *BrowserAuthorizer) { a.openURL = open }
}

// NewBrowserAuthorizer creates a browser authorizer listening on port
// (0 for any free port). httpClient may be nil.
func NewBrowserAuthorizer(
	config *oauth2.Config, httpClient *http.Client, port int, opts ...BrowserOption,
) *BrowserAuthorizer {
	a := &BrowserAuthorizer{
		config:     config,
		httpClient: httpClient,
		port:       port,
		timeout:    defaultBrowserTimeout,
		openURL:    OpenBrowser,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authorize opens the sign-in page, waits for the redirect and exchanges
// the code for tokens. prompt receives the sign-in URL and an empty code.
func (a *BrowserAuthorizer) Authorize(
	ctx context.Context, prompt func(verificationURI, userCode string),
) (*domain.CachedAccount, error) {
	if a.config.ClientID == "" {
		return nil, fmt.Errorf("%w: client id is not configured", domain.ErrInvalidInput)
	}

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	callback := newCallbackServer(a.port, state)
	if err := callback.Start(); err != nil {
		return nil, fmt.Errorf("start redirect listener: %w", err)
	}
	defer func() {
		if err := callback.Stop(); err != nil {
			logger.Debug("Stopping redirect listener: %v", err)
		}
	}()

	cfg := *a.config
	cfg.RedirectURL = callback.RedirectURI()
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	if prompt != nil {
		prompt(authURL, "")
	}
	if a.openURL != nil {
		if err := a.openURL(authURL); err != nil {
			logger.Warn("Could not open a browser: %v", err)
		}
	}

	code, err := callback.Wait(ctx, a.timeout)
	if err != nil {
		return nil, err
	}

	if a.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
	}
	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorisation code: %w", err)
	}

	account := accountFromToken(domain.CachedAccount{TokenType: "Bearer"}, tok)
	return &account, nil
}

// NewAuthorizer returns the authorizer for the configured login flow.
func NewAuthorizer(settings domain.GraphSettings, httpClient *http.Client) driven.Authorizer {
	config := OAuthConfig(settings)
	if settings.LoginFlow == domain.LoginFlowBrowser {
		return NewBrowserAuthorizer(config, httpClient, settings.RedirectPort)
	}
	return NewDeviceAuthorizer(config, httpClient)
}
