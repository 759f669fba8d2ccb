package query

import (
	"context"

	"github.com/iothub/storefront/internal/wishlist/domain"
	"github.com/iothub/storefront/internal/wishlist/repository"
)

// GetWishlistQuery represents the query to load a wishlist
type GetWishlistQuery struct {
	UserID string
}

// GetWishlistHandler handles get wishlist query
type GetWishlistHandler struct {
	wishlists repository.WishlistRepository
}

// NewGetWishlistHandler creates a new get wishlist handler
func NewGetWishlistHandler(wishlists repository.WishlistRepository) *GetWishlistHandler {
	return &GetWishlistHandler{wishlists: wishlists}
}

// Handle executes the get wishlist query
func (h *GetWishlistHandler) Handle(ctx context.Context, q GetWishlistQuery) (*domain.Wishlist, error) {
	return h.wishlists.Load(ctx, q.UserID)
}
