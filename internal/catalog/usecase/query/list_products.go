package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products
type ListProductsQuery struct {
	Limit       int
	Offset      int
	Category    string
	ProductType string
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]ProductView, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.ProductType != "" &&
		q.ProductType != domain.TypePhysical &&
		q.ProductType != domain.TypeDigitalProject {
		return nil, fmt.Errorf("invalid product type")
	}

	var (
		products []domain.Product
		err      error
	)
	switch {
	case q.ProductType != "":
		products, err = h.repo.FindByType(q.ProductType, q.Limit, q.Offset)
	case q.Category != "":
		products, err = h.repo.FindByCategory(q.Category, q.Limit, q.Offset)
	default:
		products, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{Product: p, Active: p.IsActive()})
	}
	return views, nil
}
