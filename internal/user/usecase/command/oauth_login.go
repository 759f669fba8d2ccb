package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/pkg/auth"
)

// OAuthLoginCommand represents a sign-in completed by an external
// identity provider. Metadata carries the provider's raw name fields.
type OAuthLoginCommand struct {
	Provider string
	Subject  string // provider's stable user id
	Email    string
	Metadata map[string]string
}

// OAuthLoginHandler handles OAuth sign-in completion
type OAuthLoginHandler struct {
	repo     domain.ProfileRepository
	sessions *session.Manager
}

// NewOAuthLoginHandler creates a new OAuth login handler
func NewOAuthLoginHandler(repo domain.ProfileRepository, sessions *session.Manager) *OAuthLoginHandler {
	return &OAuthLoginHandler{repo: repo, sessions: sessions}
}

// Handle executes the OAuth login command. The profile row is created
// lazily on first sign-in, with names extracted from whichever metadata
// fields the provider populated.
func (h *OAuthLoginHandler) Handle(ctx context.Context, cmd OAuthLoginCommand) (*LoginResponse, error) {
	if cmd.Subject == "" {
		return nil, fmt.Errorf("provider subject is required")
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if cmd.Provider != domain.ProviderGoogle && cmd.Provider != domain.ProviderGitHub {
		return nil, fmt.Errorf("unsupported provider")
	}

	profile, err := h.repo.FindByEmail(cmd.Email)
	if err != nil {
		first, last := domain.NamesFromMetadata(cmd.Metadata)
		profile = &domain.Profile{
			ID:        uuid.New().String(),
			Email:     cmd.Email,
			FirstName: first,
			LastName:  last,
			Role:      domain.RoleUser,
			Provider:  cmd.Provider,
		}
		if err := h.repo.Create(profile); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
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
