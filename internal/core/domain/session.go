package domain

import "sync"

// MaxRefreshFailures is the number of consecutive failed token refreshes
// after which a session's token is no longer used.
const MaxRefreshFailures = 2

// Session holds the bearer token used for one request cycle.
// The token may be swapped by a refresh while parallel calls are in flight,
// so access goes through the mutex.
type Session struct {
	// AccountID identifies the cached credential used to refresh the token.
	// Empty disables refresh on 401.
	AccountID string

	mu       sync.RWMutex
	token    string
	failures int
}

// NewSession creates a session for an account with an initial token.
func NewSession(accountID, token string) *Session {
	return &Session{AccountID: accountID, token: token}
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Renew replaces the bearer token and clears the refresh failure count.
func (s *Session) Renew(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.failures = 0
}

// RefreshFailed records a failed refresh and returns the number of
// consecutive failures.
func (s *Session) RefreshFailed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
	return s.failures
}

// Expired reports whether refreshing has failed MaxRefreshFailures times
// in a row. An expired session's token must not be sent again.
func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failures >= MaxRefreshFailures
}

// AuthorizationHeader returns the value for the Authorization header.
func (s *Session) AuthorizationHeader() string {
	return "Bearer " + s.Token()
}
