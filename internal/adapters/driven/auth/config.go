package auth

import (
	"golang.org/x/oauth2"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// OAuthConfig builds the oauth2 client configuration for the tenant.
// Credentials are sent in the form body so public clients (no secret) work.
func OAuthConfig(settings domain.GraphSettings) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     settings.ClientID,
		ClientSecret: settings.ClientSecret,
		Scopes:       settings.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:       settings.AuthURL(),
			TokenURL:      settings.TokenURL(),
			DeviceAuthURL: settings.DeviceAuthURL(),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// accountFromToken copies an oauth2 token into a cached account.
// An empty refresh token keeps the previous one.
func accountFromToken(prev domain.CachedAccount, tok *oauth2.Token) domain.CachedAccount {
	next := prev
	next.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		next.RefreshToken = tok.RefreshToken
	}
	if tok.TokenType != "" {
		next.TokenType = tok.TokenType
	}
	next.Expiry = tok.Expiry
	return next
}
