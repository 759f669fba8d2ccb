package command

import (
	"context"

	"github.com/iothub/storefront/internal/wishlist/repository"
)

// ClearWishlistCommand represents the command to empty a wishlist
type ClearWishlistCommand struct {
	UserID string
}

// ClearWishlistHandler handles clear wishlist command
type ClearWishlistHandler struct {
	wishlists repository.WishlistRepository
}

// NewClearWishlistHandler creates a new clear wishlist handler
func NewClearWishlistHandler(wishlists repository.WishlistRepository) *ClearWishlistHandler {
	return &ClearWishlistHandler{wishlists: wishlists}
}

// Handle executes the clear wishlist command
func (h *ClearWishlistHandler) Handle(ctx context.Context, cmd ClearWishlistCommand) error {
	return h.wishlists.Delete(ctx, cmd.UserID)
}
