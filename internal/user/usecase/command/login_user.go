package command

import (
	"context"
	"fmt"

	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/pkg/auth"
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	Token   string           `json:"token"`
	User    session.User     `json:"user"`
	Session *session.Session `json:"session"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo     domain.ProfileRepository
	sessions *session.Manager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.ProfileRepository, sessions *session.Manager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, sessions: sessions}
}

// Handle executes the login user command. On success the assembled
// user is cached in the session store before the response is returned;
// a cache write failure fails the login rather than leaving a token
// without a session.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResponse, error) {
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	profile, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.CheckPassword(profile.PasswordHash, cmd.Password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(profile.ID, profile.Email, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
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

	return &LoginResponse{
		Token:   token,
		User:    user,
		Session: sess,
	}, nil
}
