package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/iothub/storefront/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// GormProfileRepositoryWithTracing wraps GormProfileRepository with tracing
type GormProfileRepositoryWithTracing struct {
	*GormProfileRepository
}

// NewGormProfileRepositoryWithTracing creates a new repository with tracing
func NewGormProfileRepositoryWithTracing(db *gorm.DB) *GormProfileRepositoryWithTracing {
	return &GormProfileRepositoryWithTracing{
		GormProfileRepository: NewGormProfileRepository(db),
	}
}

// FindByEmailWithContext retrieves a profile by email with tracing
func (r *GormProfileRepositoryWithTracing) FindByEmailWithContext(ctx context.Context, email string) (*domain.Profile, error) {
	_, span := tracer.Start(ctx, "repository.FindByEmail",
		trace.WithAttributes(
			attribute.String("profile.email", email),
		),
	)
	defer span.End()

	profile, err := r.GormProfileRepository.FindByEmail(email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("profile.id", profile.ID))
	return profile, nil
}

// CreateWithContext inserts a profile with tracing
func (r *GormProfileRepositoryWithTracing) CreateWithContext(ctx context.Context, profile *domain.Profile) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("profile.email", profile.Email),
			attribute.String("profile.provider", profile.Provider),
		),
	)
	defer span.End()

	if err := r.GormProfileRepository.Create(profile); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("profile.id", profile.ID))
	return nil
}
