package domain

import "time"

// TokenCache is the cached refresh state for one account identifier.
// It mirrors what an identity library keeps on disk: the accounts that
// signed in and the tokens issued to them.
type TokenCache struct {
	// AccountID is the key the cache is stored under.
	AccountID string `json:"account_id"`

	// Accounts are the signed-in accounts, most recent first.
	Accounts []CachedAccount `json:"accounts"`

	// UpdatedAt is when the cache was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedAccount stores OAuth tokens for a signed-in user.
type CachedAccount struct {
	// Username is the user principal name or mail from the identity provider.
	Username string `json:"username,omitempty"`

	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token,omitempty"`

	// RefreshToken is used to obtain new access tokens silently.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the access token has expired.
func (a *CachedAccount) IsExpired() bool {
	if a.Expiry.IsZero() {
		return false
	}
	return time.Now().After(a.Expiry)
}

// ValidFor returns true if the access token is present and valid for at least d.
func (a *CachedAccount) ValidFor(d time.Duration) bool {
	if a.AccessToken == "" {
		return false
	}
	if a.Expiry.IsZero() {
		return true
	}
	return time.Until(a.Expiry) > d
}

// HasRefreshToken returns true if a refresh token is available.
func (a *CachedAccount) HasRefreshToken() bool {
	return a.RefreshToken != ""
}

// Primary returns the first cached account, or nil when the cache is empty.
func (c *TokenCache) Primary() *CachedAccount {
	if c == nil || len(c.Accounts) == 0 {
		return nil
	}
	return &c.Accounts[0]
}
