package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role types
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Auth providers
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderGitHub   = "github"
)

// Profile is the application-owned identity record, separate from
// credential verification. Role is trusted for UI gating only.
type Profile struct {
	ID           string         `json:"id" gorm:"primaryKey;type:uuid"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         string         `json:"role" gorm:"not null;default:'user'"`
	Provider     string         `json:"provider" gorm:"not null;default:'password'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin checks if the profile has admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// NamesFromMetadata extracts first/last name from OAuth provider
// metadata. Providers populate different fields: given_name/family_name
// where available, otherwise one of the combined name fields is split
// on the first space. Dropping any fallback regresses name display for
// some login methods.
func NamesFromMetadata(meta map[string]string) (first, last string) {
	if meta == nil {
		return "", ""
	}

	if given := meta["given_name"]; given != "" {
		return given, meta["family_name"]
	}

	for _, field := range []string{"full_name", "name", "display_name"} {
		full := strings.TrimSpace(meta[field])
		if full == "" {
			continue
		}
		parts := strings.SplitN(full, " ", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
		return parts[0], ""
	}

	return "", ""
}

// ProfileRepository defines the contract for profile data access
type ProfileRepository interface {
	Create(profile *Profile) error
	FindByID(id string) (*Profile, error)
	FindByEmail(email string) (*Profile, error)
	Update(profile *Profile) error
	Delete(id string) error
	Count() (int64, error)
}
