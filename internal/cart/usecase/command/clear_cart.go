package command

import (
	"context"

	"github.com/iothub/storefront/internal/cart/repository"
)

// ClearCartCommand represents the command to empty a cart
type ClearCartCommand struct {
	UserID string
}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	carts repository.CartRepository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts repository.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle executes the clear cart command. The persisted key is deleted
// rather than overwritten with an empty list.
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	return h.carts.Delete(ctx, cmd.UserID)
}
