//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	otpdomain "github.com/iothub/storefront/internal/otp/domain"
	otprepo "github.com/iothub/storefront/internal/otp/repository"
	otpcommand "github.com/iothub/storefront/internal/otp/usecase/command"
	"github.com/iothub/storefront/internal/session"
	"github.com/iothub/storefront/internal/user/delivery/http"
	"github.com/iothub/storefront/internal/user/domain"
	"github.com/iothub/storefront/internal/user/repository"
	"github.com/iothub/storefront/internal/user/usecase/command"
	"github.com/iothub/storefront/internal/user/usecase/query"
	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/keystore"
)

// ProvideProfileRepository provides the profile repository
func ProvideProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return repository.NewGormProfileRepository(db)
}

// ProvideVerificationRepository provides the OTP verification repository
func ProvideVerificationRepository(db *gorm.DB) otpdomain.VerificationRepository {
	return otprepo.NewGormVerificationRepository(db)
}

// ProvideSessionManager provides the session manager
func ProvideSessionManager(store keystore.Store) *session.Manager {
	return session.NewManager(store)
}

// Command Handlers Providers
func ProvideRegisterUserHandler(repo domain.ProfileRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.ProfileRepository, sessions *session.Manager) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo, sessions)
}

func ProvideOAuthLoginHandler(repo domain.ProfileRepository, sessions *session.Manager) *command.OAuthLoginHandler {
	return command.NewOAuthLoginHandler(repo, sessions)
}

func ProvideLogoutUserHandler(sessions *session.Manager, store keystore.Store) *command.LogoutUserHandler {
	return command.NewLogoutUserHandler(sessions, store)
}

func ProvideVerifyAuthHandler(sessions *session.Manager) *command.VerifyAuthHandler {
	return command.NewVerifyAuthHandler(sessions)
}

func ProvideRequestOTPHandler(repo otpdomain.VerificationRepository, publisher *kafka.Publisher) *otpcommand.RequestOTPHandler {
	return otpcommand.NewRequestOTPHandler(repo, publisher)
}

func ProvideVerifyOTPHandler(repo otpdomain.VerificationRepository) *otpcommand.VerifyOTPHandler {
	return otpcommand.NewVerifyOTPHandler(repo)
}

// Query Handlers Providers
func ProvideGetProfileHandler(repo domain.ProfileRepository) *query.GetProfileHandler {
	return query.NewGetProfileHandler(repo)
}

func ProvideRehydrateSessionHandler(repo domain.ProfileRepository, sessions *session.Manager) *query.RehydrateSessionHandler {
	return query.NewRehydrateSessionHandler(repo, sessions)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProfileRepository,
	ProvideVerificationRepository,
	ProvideSessionManager,
)

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
	ProvideOAuthLoginHandler,
	ProvideLogoutUserHandler,
	ProvideVerifyAuthHandler,
	ProvideRequestOTPHandler,
	ProvideVerifyOTPHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProfileHandler,
	ProvideRehydrateSessionHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, store keystore.Store, publisher *kafka.Publisher) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandler,
	)
	return nil, nil
}
