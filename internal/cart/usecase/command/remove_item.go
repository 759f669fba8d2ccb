package command

import (
	"context"
	"fmt"

	"github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/internal/cart/repository"
)

// RemoveItemCommand represents the command to remove a cart line
type RemoveItemCommand struct {
	UserID    string
	ProductID uint
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	carts repository.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts repository.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Cart, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	cart, err := h.carts.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(cmd.ProductID)

	if err := h.carts.Save(ctx, cmd.UserID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
