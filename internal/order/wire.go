//go:build wireinject
// +build wireinject

package order

import (
	"database/sql"

	"github.com/google/wire"

	cartrepo "github.com/iothub/storefront/internal/cart/repository"
	"github.com/iothub/storefront/internal/order/delivery/http"
	"github.com/iothub/storefront/internal/order/domain"
	"github.com/iothub/storefront/internal/order/repository"
	"github.com/iothub/storefront/internal/order/usecase/command"
	"github.com/iothub/storefront/internal/order/usecase/query"
	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/keystore"
	"github.com/iothub/storefront/pkg/links"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *sql.DB) domain.OrderRepository {
	return repository.NewPostgresOrderRepository(db)
}

// ProvideCartRepository provides the cart repository orders are placed from
func ProvideCartRepository(store keystore.Store) cartrepo.CartRepository {
	return cartrepo.NewKeystoreCartRepository(store)
}

// Command Handlers Providers
func ProvidePlaceOrderHandler(
	orders domain.OrderRepository,
	carts cartrepo.CartRepository,
	publisher *kafka.Publisher,
	upi links.UPIConfig,
	supportNo string,
	supportEmail string,
) *command.PlaceOrderHandler {
	return command.NewPlaceOrderHandler(orders, carts, publisher, upi, supportNo, supportEmail)
}

func ProvideUpdateStatusHandler(orders domain.OrderRepository) *command.UpdateStatusHandler {
	return command.NewUpdateStatusHandler(orders)
}

// Query Handlers Providers
func ProvideGetOrderHandler(orders domain.OrderRepository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(orders)
}

func ProvideListOrdersHandler(orders domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(orders)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideCartRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvidePlaceOrderHandler,
	ProvideUpdateStatusHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetOrderHandler,
	ProvideListOrdersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *sql.DB,
	store keystore.Store,
	publisher *kafka.Publisher,
	upi links.UPIConfig,
	supportNo string,
	supportEmail string,
) (*http.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
