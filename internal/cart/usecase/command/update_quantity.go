package command

import (
	"context"
	"fmt"

	"github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/internal/cart/repository"
)

// UpdateQuantityCommand represents the command to set a line's quantity
type UpdateQuantityCommand struct {
	UserID    string
	ProductID uint
	Quantity  int
}

// UpdateQuantityHandler handles update quantity command
type UpdateQuantityHandler struct {
	carts repository.CartRepository
}

// NewUpdateQuantityHandler creates a new update quantity handler
func NewUpdateQuantityHandler(carts repository.CartRepository) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{carts: carts}
}

// Handle executes the update quantity command. Zero or negative
// quantity removes the line.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Cart, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	cart, err := h.carts.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	// Unchanged quantity is a no-op; don't rewrite the blob
	if cart.Quantity(cmd.ProductID) == cmd.Quantity {
		return cart, nil
	}

	cart.UpdateQuantity(cmd.ProductID, cmd.Quantity)

	if err := h.carts.Save(ctx, cmd.UserID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
