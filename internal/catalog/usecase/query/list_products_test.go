package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// stubProductRepository records the paging it was called with
type stubProductRepository struct {
	products   []domain.Product
	lastLimit  int
	lastOffset int
}

func (s *stubProductRepository) Create(*domain.Product) error { return nil }

func (s *stubProductRepository) FindByID(id uint) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product not found")
}

func (s *stubProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	s.lastLimit, s.lastOffset = limit, offset
	return s.products, nil
}

func (s *stubProductRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	s.lastLimit, s.lastOffset = limit, offset
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepository) FindByType(productType string, limit, offset int) ([]domain.Product, error) {
	s.lastLimit, s.lastOffset = limit, offset
	var out []domain.Product
	for _, p := range s.products {
		if p.ProductType == productType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepository) Update(*domain.Product) error { return nil }
func (s *stubProductRepository) UpdateStock(uint, int) error  { return nil }
func (s *stubProductRepository) Delete(uint) error            { return nil }
func (s *stubProductRepository) Count() (int64, error)        { return int64(len(s.products)), nil }

func (s *stubProductRepository) CountByType(productType string) (int64, error) {
	var n int64
	for _, p := range s.products {
		if p.ProductType == productType {
			n++
		}
	}
	return n, nil
}

func testRepo() *stubProductRepository {
	return &stubProductRepository{products: []domain.Product{
		{ID: 1, Name: "ESP32 DevKit", Price: 450, Category: "microcontrollers", ProductType: domain.TypePhysical, Stock: 10},
		{ID: 2, Name: "Out of Stock Relay", Price: 220, Category: "relays", ProductType: domain.TypePhysical, Stock: 0},
		{ID: 3, Name: "Smart Irrigation Kit", Price: 1200, Category: "projects", ProductType: domain.TypeDigitalProject},
	}}
}

func TestListProducts(t *testing.T) {
	handler := NewListProductsHandler(testRepo())

	views, err := handler.Handle(ListProductsQuery{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.True(t, views[0].Active, "physical with stock")
	assert.False(t, views[1].Active, "physical without stock")
	assert.True(t, views[2].Active, "digital projects ignore stock")
}

func TestListProductsDefaultsLimit(t *testing.T) {
	repo := testRepo()
	handler := NewListProductsHandler(repo)

	_, err := handler.Handle(ListProductsQuery{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, err = handler.Handle(ListProductsQuery{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit, "oversized limit is clamped to the default")
}

func TestListProductsByType(t *testing.T) {
	handler := NewListProductsHandler(testRepo())

	views, err := handler.Handle(ListProductsQuery{ProductType: domain.TypeDigitalProject})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Smart Irrigation Kit", views[0].Name)
}

func TestListProductsByCategory(t *testing.T) {
	handler := NewListProductsHandler(testRepo())

	views, err := handler.Handle(ListProductsQuery{Category: "relays"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, uint(2), views[0].ID)
}

func TestListProductsInvalidType(t *testing.T) {
	handler := NewListProductsHandler(testRepo())

	_, err := handler.Handle(ListProductsQuery{ProductType: "imaginary"})
	assert.ErrorContains(t, err, "invalid product type")
}

func TestGetProduct(t *testing.T) {
	handler := NewGetProductHandler(testRepo())

	view, err := handler.Handle(GetProductQuery{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "Out of Stock Relay", view.Name)
	assert.False(t, view.Active)
}

func TestGetProductNotFound(t *testing.T) {
	handler := NewGetProductHandler(testRepo())

	_, err := handler.Handle(GetProductQuery{ID: 99})
	assert.Error(t, err)
}
