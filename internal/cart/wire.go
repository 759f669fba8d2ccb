//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	catalogrepo "github.com/iothub/storefront/internal/catalog/repository"
	"github.com/iothub/storefront/internal/cart/delivery/http"
	"github.com/iothub/storefront/internal/cart/repository"
	"github.com/iothub/storefront/internal/cart/usecase/command"
	"github.com/iothub/storefront/internal/cart/usecase/query"
	"github.com/iothub/storefront/pkg/keystore"
)

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(store keystore.Store) repository.CartRepository {
	return repository.NewKeystoreCartRepository(store)
}

// ProvideProductRepository provides the catalog read side the cart
// validates items against
func ProvideProductRepository(db *gorm.DB) catalogdomain.ProductRepository {
	return catalogrepo.NewGormProductRepository(db)
}

// Command Handlers Providers
func ProvideAddItemHandler(carts repository.CartRepository, products catalogdomain.ProductRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(carts, products)
}

func ProvideRemoveItemHandler(carts repository.CartRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(carts)
}

func ProvideUpdateQuantityHandler(carts repository.CartRepository) *command.UpdateQuantityHandler {
	return command.NewUpdateQuantityHandler(carts)
}

func ProvideClearCartHandler(carts repository.CartRepository) *command.ClearCartHandler {
	return command.NewClearCartHandler(carts)
}

// Query Handlers Providers
func ProvideGetCartHandler(carts repository.CartRepository) *query.GetCartHandler {
	return query.NewGetCartHandler(carts)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
	ProvideUpdateQuantityHandler,
	ProvideClearCartHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCartHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, store keystore.Store) (*http.CartHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCartHandler,
	)
	return nil, nil
}
