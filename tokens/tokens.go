// Package tokens issues and validates the opaque session tokens the
// HTTP layer hands to the browser client. The core allows one live
// session, so the manager tracks a single current token; issuing a new
// one invalidates the previous session's token.
package tokens

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidToken covers a missing, unknown, superseded, or expired token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Token is an opaque bearer token bound to an account for a limited time.
type Token struct {
	Value     string
	AccountID string
	ExpiresAt time.Time
}

// Manager issues tokens at login and validates them per request.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Token
	now     func() time.Time
}

// NewManager returns a manager whose tokens live for ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{ttl: ttl, now: time.Now}
}

// Issue mints a fresh token for the account, replacing any current one.
func (m *Manager) Issue(accountID string) Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := Token{
		Value:     uuid.New().String(),
		AccountID: accountID,
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.current = &token
	return token
}

// Validate returns the token bound to value if it is the current one and
// has not expired.
func (m *Manager) Validate(value string) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.Value != value || m.current.ExpiresAt.Before(m.now()) {
		return Token{}, ErrInvalidToken
	}
	return *m.current, nil
}

// Revoke drops the current token, ending the HTTP session.
func (m *Manager) Revoke() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}
