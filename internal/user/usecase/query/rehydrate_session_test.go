package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/pkg/auth"
	"github.com/iothub/storefront/pkg/keystore"
)

type fakeProfileRepository struct {
	profiles map[string]*domain.Profile
}

func (f *fakeProfileRepository) Create(p *domain.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepository) FindByID(id string) (*domain.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

func (f *fakeProfileRepository) FindByEmail(email string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile not found")
}

func (f *fakeProfileRepository) Update(p *domain.Profile) error { return nil }
func (f *fakeProfileRepository) Delete(id string) error         { return nil }
func (f *fakeProfileRepository) Count() (int64, error)          { return int64(len(f.profiles)), nil }

func newRehydrateFixture() (*RehydrateSessionHandler, *session.Manager, *fakeProfileRepository) {
	repo := &fakeProfileRepository{profiles: map[string]*domain.Profile{
		"u-1": {ID: "u-1", Email: "maker@example.com", FirstName: "Asha", Role: domain.RoleUser},
	}}
	sessions := session.NewManager(keystore.NewMemoryStore())
	return NewRehydrateSessionHandler(repo, sessions), sessions, repo
}

func TestRehydrateFromCachedSession(t *testing.T) {
	handler, sessions, _ := newRehydrateFixture()
	ctx := context.Background()

	saved, err := sessions.Save(ctx, session.User{ID: "u-1", Email: "maker@example.com"}, "cached-token")
	require.NoError(t, err)

	sess, err := handler.Handle(ctx, RehydrateSessionQuery{UserID: "u-1"})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, saved.Token, sess.Token)
}

func TestRehydrateFromTokenWhenCacheMisses(t *testing.T) {
	handler, sessions, _ := newRehydrateFixture()
	ctx := context.Background()

	token, err := auth.GenerateToken("u-1", "maker@example.com", domain.RoleUser)
	require.NoError(t, err)

	sess, err := handler.Handle(ctx, RehydrateSessionQuery{UserID: "u-1", Token: token})
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "u-1", sess.User.ID)
	assert.Equal(t, "maker@example.com", sess.User.Email)

	// The rebuilt session is cached for the next bootstrap
	assert.True(t, sessions.HasValid(ctx, "u-1"))
}

func TestRehydrateAnonymousWithNothing(t *testing.T) {
	handler, _, _ := newRehydrateFixture()

	sess, err := handler.Handle(context.Background(), RehydrateSessionQuery{})
	require.NoError(t, err, "ending up anonymous is not an error")
	assert.Nil(t, sess)
}

func TestRehydrateRefreshesRecentlyExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "rehydrate-test-secret")
	handler, sessions, _ := newRehydrateFixture()
	ctx := context.Background()

	now := time.Now()
	claims := auth.Claims{
		UserID: "u-1",
		Email:  "maker@example.com",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("rehydrate-test-secret"))
	require.NoError(t, err)

	sess, err := handler.Handle(ctx, RehydrateSessionQuery{UserID: "u-1", Token: expired})
	require.NoError(t, err)
	require.NotNil(t, sess, "recently expired token should rehydrate through refresh")
	assert.Equal(t, "u-1", sess.User.ID)
	assert.NotEqual(t, expired, sess.Token, "a fresh token is cached, not the expired one")
	assert.True(t, sessions.HasValid(ctx, "u-1"))
}

func TestRehydrateGarbageTokenFallsBackToAnonymous(t *testing.T) {
	handler, _, _ := newRehydrateFixture()

	sess, err := handler.Handle(context.Background(), RehydrateSessionQuery{Token: "garbage"})
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRehydrateUnknownProfileFails(t *testing.T) {
	handler, _, _ := newRehydrateFixture()

	token, err := auth.GenerateToken("ghost", "ghost@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), RehydrateSessionQuery{Token: token})
	assert.Error(t, err)
}
