// Package session implements the server-side session cache layered in
// front of token validation: a timestamped blob per user with a fixed
// 24-hour expiry, self-destructing on expired or corrupt reads.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iothub/storefront/pkg/keystore"
)

// User is the identity snapshot cached in a session
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Session is one cached login
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiringSoon reports whether the session's remaining lifetime at the
// given instant is below ExpiringSoonWindow.
func (s *Session) ExpiringSoon(at time.Time) bool {
	return s.ExpiresAt.Sub(at) < ExpiringSoonWindow
}

const (
	// TTL is the fixed session lifetime
	TTL = 24 * time.Hour
	// ExpiringSoonWindow is the threshold below which a session counts
	// as expiring soon
	ExpiringSoonWindow = time.Hour

	keyPrefix = "iot_hub_session"
)

// Legacy keys cleared alongside the session for backward compatibility
var legacyKeyPrefixes = []string{"auth_user", "auth_token"}

// Manager stores and retrieves sessions through a keystore
type Manager struct {
	store keystore.Store
	now   func() time.Time
}

// NewManager creates a session manager backed by store
func NewManager(store keystore.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// SetClock overrides the manager's clock. Test hook.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

func sessionKey(userID string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, userID)
}

// Save stores a session for user, overwriting any prior one.
// Expiry is always now + TTL at save time.
func (m *Manager) Save(ctx context.Context, user User, token string) (*Session, error) {
	sess := Session{
		User:      user,
		Token:     token,
		ExpiresAt: m.now().Add(TTL),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := m.store.Set(ctx, sessionKey(user.ID), data, TTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &sess, nil
}

// Get returns the session for userID, or nil if there is none.
// A corrupt or expired record is deleted and treated as absent.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	key := sessionKey(userID)

	data, err := m.store.Get(ctx, key)
	if errors.Is(err, keystore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt record: clear it rather than failing every read
		_ = m.store.Delete(ctx, key)
		return nil, nil
	}

	if m.now().After(sess.ExpiresAt) {
		_ = m.store.Delete(ctx, key)
		return nil, nil
	}

	return &sess, nil
}

// Clear removes the session and legacy auth keys for userID
func (m *Manager) Clear(ctx context.Context, userID string) error {
	keys := []string{sessionKey(userID)}
	for _, prefix := range legacyKeyPrefixes {
		keys = append(keys, fmt.Sprintf("%s:%s", prefix, userID))
	}
	if err := m.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// HasValid reports whether userID has an unexpired session
func (m *Manager) HasValid(ctx context.Context, userID string) bool {
	sess, err := m.Get(ctx, userID)
	return err == nil && sess != nil
}

// ExpiringSoon reports whether the session's remaining lifetime is
// below ExpiringSoonWindow. A missing session is not expiring soon.
func (m *Manager) ExpiringSoon(ctx context.Context, userID string) bool {
	sess, err := m.Get(ctx, userID)
	if err != nil || sess == nil {
		return false
	}
	return sess.ExpiringSoon(m.now())
}
