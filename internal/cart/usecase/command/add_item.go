package command

import (
	"context"
	"fmt"

	cartdomain "github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/internal/cart/repository"
	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
)

// AddItemCommand represents the command to add a product to a cart
type AddItemCommand struct {
	UserID    string // empty for anonymous
	ProductID uint
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	carts    repository.CartRepository
	products catalogdomain.ProductRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts repository.CartRepository, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{carts: carts, products: products}
}

// Handle executes the add item command. The stored line carries a
// snapshot of the product at add time; an existing line is incremented
// instead of duplicated.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*cartdomain.Cart, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product does not exist: %w", err)
	}
	if !product.IsActive() {
		return nil, fmt.Errorf("product is out of stock")
	}

	cart, err := h.carts.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(cartdomain.Item{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		ProductType: product.ProductType,
	})

	if err := h.carts.Save(ctx, cmd.UserID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
