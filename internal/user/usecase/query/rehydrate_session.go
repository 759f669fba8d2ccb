package query

import (
	"context"
	"fmt"

	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/pkg/auth"
	"github.com/iothub/storefront/pkg/logger"
)

// RehydrateSessionQuery restores a session from whatever the client
// still holds: a cached session is the fast path, a live token the
// fallback, with one refresh attempt before giving up.
type RehydrateSessionQuery struct {
	UserID string
	Token  string
}

// RehydrateSessionHandler handles session bootstrap
type RehydrateSessionHandler struct {
	repo     domain.ProfileRepository
	sessions *session.Manager
}

// NewRehydrateSessionHandler creates a new rehydrate session handler
func NewRehydrateSessionHandler(repo domain.ProfileRepository, sessions *session.Manager) *RehydrateSessionHandler {
	return &RehydrateSessionHandler{repo: repo, sessions: sessions}
}

// Handle executes the rehydration. Returns nil (not an error) when the
// caller ends up anonymous.
func (h *RehydrateSessionHandler) Handle(ctx context.Context, q RehydrateSessionQuery) (*session.Session, error) {
	// Fast path: a valid cached session
	if q.UserID != "" {
		sess, err := h.sessions.Get(ctx, q.UserID)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	if q.Token == "" {
		return nil, nil
	}

	token := q.Token
	claims, err := auth.ValidateToken(token)
	if err != nil {
		// One refresh attempt before giving up
		refreshed, refreshErr := auth.RefreshToken(q.Token)
		if refreshErr != nil {
			logger.Debug(ctx).Err(err).Msg("Session rehydration failed, falling back to anonymous")
			return nil, nil
		}
		token = refreshed
		claims, err = auth.ValidateToken(token)
		if err != nil {
			return nil, nil
		}
	}

	profile, err := h.repo.FindByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	user := session.User{
		ID:        profile.ID,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Role:      profile.Role,
	}

	sess, err := h.sessions.Save(ctx, user, token)
	if err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}
	return sess, nil
}
