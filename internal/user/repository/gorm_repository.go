package repository

import (
	"fmt"

	"github.com/iothub/storefront/internal/user/domain"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormProfileRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Profile{})
}

// Create inserts a new profile
func (r *GormProfileRepository) Create(profile *domain.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// FindByID retrieves a profile by ID
func (r *GormProfileRepository) FindByID(id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindByEmail retrieves a profile by email
func (r *GormProfileRepository) FindByEmail(email string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := r.db.Where("email = ?", email).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("profile not found")
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// Update updates a profile
func (r *GormProfileRepository) Update(profile *domain.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// Delete soft deletes a profile
func (r *GormProfileRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&domain.Profile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("profile not found")
	}
	return nil
}

// Count returns the total number of profiles
func (r *GormProfileRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Profile{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
