package command

import (
	"context"

	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/pkg/auth"
)

// VerifyAuthCommand represents the post-login integrity check
type VerifyAuthCommand struct {
	UserID string
	Token  string
}

// VerifyAuthHandler handles authentication verification
type VerifyAuthHandler struct {
	sessions *session.Manager
}

// NewVerifyAuthHandler creates a new verify auth handler
func NewVerifyAuthHandler(sessions *session.Manager) *VerifyAuthHandler {
	return &VerifyAuthHandler{sessions: sessions}
}

// Handle reports whether the caller is authenticated: a valid cached
// session is enough, otherwise the token itself is checked live.
func (h *VerifyAuthHandler) Handle(ctx context.Context, cmd VerifyAuthCommand) bool {
	if cmd.UserID != "" && h.sessions.HasValid(ctx, cmd.UserID) {
		return true
	}

	if cmd.Token == "" {
		return false
	}
	_, err := auth.ValidateToken(cmd.Token)
	return err == nil
}
