package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	"github.com/iothub/storefront/internal/wishlist/repository"
	"github.com/iothub/storefront/pkg/keystore"
)

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

func newAddHandler() (*AddItemHandler, repository.WishlistRepository) {
	wishlists := repository.NewKeystoreWishlistRepository(keystore.NewMemoryStore())
	products := &stubProductRepository{products: map[uint]catalogdomain.Product{
		1: {ID: 1, Name: "ESP32 DevKit", Price: 450, ProductType: catalogdomain.TypePhysical, Stock: 10},
		3: {ID: 3, Name: "Out of Stock Relay", Price: 220, ProductType: catalogdomain.TypePhysical, Stock: 0},
	}}
	return NewAddItemHandler(wishlists, products), wishlists
}

func TestAddItem(t *testing.T) {
	handler, _ := newAddHandler()

	result, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	assert.True(t, result.Added)
	require.Len(t, result.Wishlist.Items, 1)
	assert.Equal(t, "ESP32 DevKit", result.Wishlist.Items[0].Name)
	assert.False(t, result.Wishlist.Items[0].AddedAt.IsZero())
}

func TestAddItemDuplicateReportsNotAdded(t *testing.T) {
	handler, _ := newAddHandler()
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	result, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err, "duplicate add is a no-op, not an error")
	assert.False(t, result.Added)
	assert.Len(t, result.Wishlist.Items, 1)
}

// Out-of-stock products can still be saved for later, unlike the cart
func TestAddItemOutOfStockProductAllowed(t *testing.T) {
	handler, _ := newAddHandler()

	result, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 3})
	require.NoError(t, err)
	assert.True(t, result.Added)
}

func TestAddItemUnknownProduct(t *testing.T) {
	handler, _ := newAddHandler()

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u-1", ProductID: 99})
	assert.Error(t, err)
}

func TestAddItemIsolatedPerUser(t *testing.T) {
	handler, wishlists := newAddHandler()
	ctx := context.Background()

	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u-1", ProductID: 1})
	require.NoError(t, err)

	anon, err := wishlists.Load(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, anon.Items)
}
