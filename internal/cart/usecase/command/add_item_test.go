package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/internal/cart/repository"
	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	"github.com/iothub/storefront/pkg/keystore"
)

// stubProductRepository serves a fixed set of products
type stubProductRepository struct {
	products map[uint]catalogdomain.Product
}

func (s *stubProductRepository) Create(*catalogdomain.Product) error { return nil }

func (s *stubProductRepository) FindByID(id uint) (*catalogdomain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product not found")
	}
	return &p, nil
}

func (s *stubProductRepository) FindAll(int, int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindByCategory(string, int, int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) FindByType(string, int, int) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (s *stubProductRepository) Update(*catalogdomain.Product) error { return nil }
func (s *stubProductRepository) UpdateStock(uint, int) error         { return nil }
func (s *stubProductRepository) Delete(uint) error                   { return nil }
func (s *stubProductRepository) Count() (int64, error)               { return 0, nil }
func (s *stubProductRepository) CountByType(string) (int64, error)   { return 0, nil }

func testProducts() *stubProductRepository {
	return &stubProductRepository{products: map[uint]catalogdomain.Product{
		1: {ID: 1, Name: "ESP32 DevKit", Price: 450, ProductType: catalogdomain.TypePhysical, Stock: 10},
		2: {ID: 2, Name: "Smart Irrigation Kit", Price: 1200, ProductType: catalogdomain.TypeDigitalProject},
		3: {ID: 3, Name: "Out of Stock Relay", Price: 220, ProductType: catalogdomain.TypePhysical, Stock: 0},
	}}
}

func newAddHandler() (*AddItemHandler, repository.CartRepository) {
	carts := repository.NewKeystoreCartRepository(keystore.NewMemoryStore())
	return NewAddItemHandler(carts, testProducts()), carts
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	handler, _ := newAddHandler()

	cart, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "ESP32 DevKit", cart.Items[0].Name)
	assert.Equal(t, 450.0, cart.Items[0].Price)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 450.0, cart.Total)
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	handler, _ := newAddHandler()
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)
	cart, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 900.0, cart.Total)
}

func TestAddItemUnknownProduct(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 99})
	assert.Error(t, err)
}

func TestAddItemOutOfStockProduct(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 3})
	assert.ErrorContains(t, err, "out of stock")
}

func TestAddItemDigitalProjectIgnoresStock(t *testing.T) {
	handler, _ := newAddHandler()

	cart, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 2})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestAddItemIsolatedPerUser(t *testing.T) {
	handler, carts := newAddHandler()
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)
	_, err = handler.Handle(ctx, AddItemCommand{ProductID: 2}) // anonymous
	require.NoError(t, err)

	userCart, err := carts.Load(ctx, "u-1")
	require.NoError(t, err)
	anonCart, err := carts.Load(ctx, "")
	require.NoError(t, err)

	require.Len(t, userCart.Items, 1)
	require.Len(t, anonCart.Items, 1)
	assert.Equal(t, uint(1), userCart.Items[0].ProductID)
	assert.Equal(t, uint(2), anonCart.Items[0].ProductID)
}

func TestAddItemPersistsAcrossLoads(t *testing.T) {
	handler, carts := newAddHandler()
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	reloaded, err := carts.Load(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 450.0, reloaded.Total, "total is recomputed on load")
}
