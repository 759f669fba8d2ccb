package command

import (
	"context"

	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/pkg/keystore"
	"github.com/iothub/storefront/pkg/logger"
)

// LogoutUserCommand represents the command to log a user out
type LogoutUserCommand struct {
	UserID string
}

// LogoutUserHandler handles user logout command
type LogoutUserHandler struct {
	sessions *session.Manager
	store    keystore.Store
}

// NewLogoutUserHandler creates a new logout user handler
func NewLogoutUserHandler(sessions *session.Manager, store keystore.Store) *LogoutUserHandler {
	return &LogoutUserHandler{sessions: sessions, store: store}
}

// Handle executes the logout command. Logout is best-effort: every
// step runs even when an earlier one errors, and the user always ends
// up logged out locally. The legacy unscoped cart key is cleared here;
// the wishlist key deliberately is not.
func (h *LogoutUserHandler) Handle(ctx context.Context, cmd LogoutUserCommand) error {
	if err := h.sessions.Clear(ctx, cmd.UserID); err != nil {
		logger.Warn(ctx).Err(err).Str("user_id", cmd.UserID).Msg("Failed to clear session on logout")
	}

	if err := h.store.Delete(ctx, "cart_items"); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to clear legacy cart key on logout")
	}

	return nil
}
