package repository

import (
	"fmt"

	"github.com/iothub/storefront/internal/otp/domain"
	"gorm.io/gorm"
)

// GormVerificationRepository implements VerificationRepository using GORM
type GormVerificationRepository struct {
	db *gorm.DB
}

// NewGormVerificationRepository creates a new GORM OTP repository
func NewGormVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormVerificationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Verification{})
}

// Create inserts a new verification
func (r *GormVerificationRepository) Create(v *domain.Verification) error {
	if err := r.db.Create(v).Error; err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

// FindLatestByPhone retrieves the most recent verification for a phone
func (r *GormVerificationRepository) FindLatestByPhone(phone string) (*domain.Verification, error) {
	var v domain.Verification
	if err := r.db.Where("phone = ?", phone).Order("created_at DESC").First(&v).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("verification not found")
		}
		return nil, fmt.Errorf("failed to find verification: %w", err)
	}
	return &v, nil
}

// Update updates a verification
func (r *GormVerificationRepository) Update(v *domain.Verification) error {
	if err := r.db.Save(v).Error; err != nil {
		return fmt.Errorf("failed to update verification: %w", err)
	}
	return nil
}

// DeleteByPhone removes all verifications for a phone
func (r *GormVerificationRepository) DeleteByPhone(phone string) error {
	if err := r.db.Where("phone = ?", phone).Delete(&domain.Verification{}).Error; err != nil {
		return fmt.Errorf("failed to delete verifications: %w", err)
	}
	return nil
}
