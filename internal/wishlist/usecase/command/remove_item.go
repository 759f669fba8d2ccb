package command

import (
	"context"
	"fmt"

	"github.com/iothub/storefront/internal/wishlist/domain"
	"github.com/iothub/storefront/internal/wishlist/repository"
)

// RemoveItemCommand represents the command to drop a saved product
type RemoveItemCommand struct {
	UserID    string
	ProductID uint
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	wishlists repository.WishlistRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(wishlists repository.WishlistRepository) *RemoveItemHandler {
	return &RemoveItemHandler{wishlists: wishlists}
}

// Handle executes the remove item command
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Wishlist, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	wishlist, err := h.wishlists.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	wishlist.Remove(cmd.ProductID)

	if err := h.wishlists.Save(ctx, cmd.UserID, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}
