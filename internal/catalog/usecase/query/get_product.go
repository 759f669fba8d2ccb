package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// ProductView is a product together with its derived availability
type ProductView struct {
	domain.Product
	Active bool `json:"active"`
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*ProductView, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(q.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	return &ProductView{Product: *product, Active: product.IsActive()}, nil
}
