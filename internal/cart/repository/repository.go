package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iothub/storefront/internal/cart/domain"
	"github.com/iothub/storefront/pkg/keystore"
)

// AnonymousKey is the identity used when no user is authenticated
const AnonymousKey = "anonymous"

const keyPrefix = "cart_items"

// Key returns the storage key for the given identity.
// Carts are keyed per user; switching identity swaps state wholesale.
func Key(userID string) string {
	if userID == "" {
		userID = AnonymousKey
	}
	return fmt.Sprintf("%s_%s", keyPrefix, userID)
}

// CartRepository persists cart state per identity
type CartRepository interface {
	Load(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

// KeystoreCartRepository implements CartRepository on a keyed blob store
type KeystoreCartRepository struct {
	store keystore.Store
}

// NewKeystoreCartRepository creates a cart repository backed by store
func NewKeystoreCartRepository(store keystore.Store) *KeystoreCartRepository {
	return &KeystoreCartRepository{store: store}
}

// Load reads the cart for userID. A missing key yields an empty cart;
// the total is recomputed from the loaded items.
func (r *KeystoreCartRepository) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.store.Get(ctx, Key(userID))
	if errors.Is(err, keystore.ErrNotFound) {
		return domain.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []domain.Item{}
	}
	cart.Recompute()
	return &cart, nil
}

// Save writes the full cart state for userID
func (r *KeystoreCartRepository) Save(ctx context.Context, userID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.store.Set(ctx, Key(userID), data, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the persisted cart for userID
func (r *KeystoreCartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, Key(userID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
