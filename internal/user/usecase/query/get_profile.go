package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/user/domain"
)

// GetProfileQuery represents the query to get a profile by ID
type GetProfileQuery struct {
	ID string
}

// GetProfileHandler handles get profile query
type GetProfileHandler struct {
	repo domain.ProfileRepository
}

// NewGetProfileHandler creates a new get profile handler
func NewGetProfileHandler(repo domain.ProfileRepository) *GetProfileHandler {
	return &GetProfileHandler{repo: repo}
}

// Handle executes the get profile query
func (h *GetProfileHandler) Handle(q GetProfileQuery) (*domain.Profile, error) {
	if q.ID == "" {
		return nil, fmt.Errorf("invalid profile id")
	}

	profile, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}

	return profile, nil
}
