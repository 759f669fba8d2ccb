package command

import (
	"context"
	"fmt"
	"time"

	catalogdomain "github.com/iothub/storefront/internal/catalog/domain"
	"github.com/iothub/storefront/internal/wishlist/domain"
	"github.com/iothub/storefront/internal/wishlist/repository"
)

// AddItemCommand represents the command to save a product to a wishlist
type AddItemCommand struct {
	UserID    string
	ProductID uint
}

// AddItemResult carries the updated wishlist and whether the add
// actually happened. A duplicate add is a no-op, not an error; the
// caller surfaces a notice instead.
type AddItemResult struct {
	Wishlist *domain.Wishlist
	Added    bool
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	wishlists repository.WishlistRepository
	products  catalogdomain.ProductRepository
	now       func() time.Time
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(wishlists repository.WishlistRepository, products catalogdomain.ProductRepository) *AddItemHandler {
	return &AddItemHandler{wishlists: wishlists, products: products, now: time.Now}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*AddItemResult, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.products.FindByID(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product does not exist: %w", err)
	}

	wishlist, err := h.wishlists.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	added := wishlist.Add(domain.Item{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		ProductType: product.ProductType,
		AddedAt:     h.now(),
	})

	if added {
		if err := h.wishlists.Save(ctx, cmd.UserID, wishlist); err != nil {
			return nil, err
		}
	}

	return &AddItemResult{Wishlist: wishlist, Added: added}, nil
}
