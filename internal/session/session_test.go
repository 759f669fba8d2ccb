package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/pkg/keystore"
)

func newTestManager(t *testing.T) (*Manager, *keystore.MemoryStore) {
	t.Helper()
	store := keystore.NewMemoryStore()
	return NewManager(store), store
}

func testUser() User {
	return User{
		ID:        "u-1",
		Email:     "maker@example.com",
		FirstName: "Asha",
		LastName:  "Verma",
		Role:      "user",
	}
}

func TestSaveAndGet(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	saved, err := m.Save(ctx, testUser(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, "token-abc", saved.Token)

	got, err := m.Get(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "maker@example.com", got.User.Email)
	assert.Equal(t, "token-abc", got.Token)
}

func TestGetMissingSession(t *testing.T) {
	m, _ := newTestManager(t)

	got, err := m.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveOverwritesPriorSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Save(ctx, testUser(), "old-token")
	require.NoError(t, err)
	_, err = m.Save(ctx, testUser(), "new-token")
	require.NoError(t, err)

	got, err := m.Get(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new-token", got.Token)
}

func TestExpiredSessionSelfDestructs(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	start := time.Now()
	m.SetClock(func() time.Time { return start })

	_, err := m.Save(ctx, testUser(), "token-abc")
	require.NoError(t, err)

	// One minute past the 24-hour lifetime
	m.SetClock(func() time.Time { return start.Add(TTL + time.Minute) })

	got, err := m.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// The record is gone, not just hidden
	_, err = store.Get(ctx, "iot_hub_session:u-1")
	assert.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestCorruptSessionSelfDestructs(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "iot_hub_session:u-1", []byte("{not json"), 0))

	got, err := m.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = store.Get(ctx, "iot_hub_session:u-1")
	assert.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestHasValid(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	assert.False(t, m.HasValid(ctx, "u-1"))

	_, err := m.Save(ctx, testUser(), "token-abc")
	require.NoError(t, err)

	assert.True(t, m.HasValid(ctx, "u-1"))
}

func TestExpiringSoon(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	start := time.Now()
	m.SetClock(func() time.Time { return start })

	_, err := m.Save(ctx, testUser(), "token-abc")
	require.NoError(t, err)

	assert.False(t, m.ExpiringSoon(ctx, "u-1"), "fresh session has 24h left")

	// 23h30m in: thirty minutes remaining
	m.SetClock(func() time.Time { return start.Add(TTL - 30*time.Minute) })
	assert.True(t, m.ExpiringSoon(ctx, "u-1"))
}

func TestSessionExpiringSoonAtInstant(t *testing.T) {
	now := time.Now()
	sess := &Session{ExpiresAt: now.Add(TTL)}

	assert.False(t, sess.ExpiringSoon(now))
	assert.True(t, sess.ExpiringSoon(now.Add(TTL-30*time.Minute)))
	assert.True(t, sess.ExpiringSoon(now.Add(TTL+time.Minute)), "already expired counts as expiring soon")
}

func TestExpiringSoonMissingSession(t *testing.T) {
	m, _ := newTestManager(t)
	assert.False(t, m.ExpiringSoon(context.Background(), "nobody"))
}

func TestClearRemovesSessionAndLegacyKeys(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	_, err := m.Save(ctx, testUser(), "token-abc")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "auth_user:u-1", []byte("{}"), 0))
	require.NoError(t, store.Set(ctx, "auth_token:u-1", []byte("tok"), 0))

	require.NoError(t, m.Clear(ctx, "u-1"))

	for _, key := range []string{"iot_hub_session:u-1", "auth_user:u-1", "auth_token:u-1"} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, keystore.ErrNotFound, key)
	}
}
