//go:build wireinject
// +build wireinject

package wishlist

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	catalogrepo "github.com/iothub/storefront/internal/catalog/repository"
	"github.com/iothub/storefront/internal/wishlist/delivery/http"
	"github.com/iothub/storefront/internal/wishlist/repository"
	"github.com/iothub/storefront/internal/wishlist/usecase/command"
	"github.com/iothub/storefront/internal/wishlist/usecase/query"
	"github.com/iothub/storefront/pkg/keystore"
)

// ProvideWishlistRepository provides the wishlist repository
func ProvideWishlistRepository(store keystore.Store) repository.WishlistRepository {
	return repository.NewKeystoreWishlistRepository(store)
}

// ProvideProductRepository provides the catalog read side
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

// Command Handlers Providers
func ProvideAddItemHandler(wishlists repository.WishlistRepository, products catalogdomain.ProductRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(wishlists, products)
}

func ProvideRemoveItemHandler(wishlists repository.WishlistRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(wishlists)
}

func ProvideClearWishlistHandler(wishlists repository.WishlistRepository) *command.ClearWishlistHandler {
	return command.NewClearWishlistHandler(wishlists)
}

// Query Handlers Providers
func ProvideGetWishlistHandler(wishlists repository.WishlistRepository) *query.GetWishlistHandler {
	return query.NewGetWishlistHandler(wishlists)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideWishlistRepository,
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
	ProvideClearWishlistHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetWishlistHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, store keystore.Store) (*http.WishlistHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewWishlistHandler,
	)
	return nil, nil
}
