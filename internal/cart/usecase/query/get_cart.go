package query

import (
	"context"

	"github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/internal/cart/repository"
)

// GetCartQuery represents the query to load a cart
type GetCartQuery struct {
	UserID string
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	carts repository.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts repository.CartRepository) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query. An identity with no persisted
// cart loads as empty.
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*domain.Cart, error) {
	return h.carts.Load(ctx, q.UserID)
}
