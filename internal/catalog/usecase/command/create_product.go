package command

import (
	"fmt"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	ProductType string
	Stock       int
	Rating      float64
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than 0")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.Rating < 0 || cmd.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	productType := cmd.ProductType
	if productType == "" {
		productType = domain.TypePhysical
	}
	if productType != domain.TypePhysical && productType != domain.TypeDigitalProject {
		return nil, fmt.Errorf("invalid product type")
	}

	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		ImageURL:    cmd.ImageURL,
		Category:    cmd.Category,
		ProductType: productType,
		Stock:       cmd.Stock,
		Rating:      cmd.Rating,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
