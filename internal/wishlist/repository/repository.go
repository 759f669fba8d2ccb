package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iothub/storefront/internal/wishlist/domain"
	"github.com/iothub/storefront/pkg/keystore"
)

// AnonymousKey is the identity used when no user is authenticated
const AnonymousKey = "anonymous"

const keyPrefix = "wishlist_items"

// Key returns the storage key for the given identity
func Key(userID string) string {
	if userID == "" {
		userID = AnonymousKey
	}
	return fmt.Sprintf("%s_%s", keyPrefix, userID)
}

// WishlistRepository persists wishlist state per identity
type WishlistRepository interface {
	Load(ctx context.Context, userID string) (*domain.Wishlist, error)
	Save(ctx context.Context, userID string, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, userID string) error
}

// KeystoreWishlistRepository implements WishlistRepository on a keyed blob store
type KeystoreWishlistRepository struct {
	store keystore.Store
}

// NewKeystoreWishlistRepository creates a wishlist repository backed by store
func NewKeystoreWishlistRepository(store keystore.Store) *KeystoreWishlistRepository {
	return &KeystoreWishlistRepository{store: store}
}

// Load reads the wishlist for userID; a missing key yields an empty list
func (r *KeystoreWishlistRepository) Load(ctx context.Context, userID string) (*domain.Wishlist, error) {
	data, err := r.store.Get(ctx, Key(userID))
	if errors.Is(err, keystore.ErrNotFound) {
		return domain.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var wishlist domain.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist: %w", err)
	}
	if wishlist.Items == nil {
		wishlist.Items = []domain.Item{}
	}
	return &wishlist, nil
}

// Save writes the full wishlist state for userID
func (r *KeystoreWishlistRepository) Save(ctx context.Context, userID string, wishlist *domain.Wishlist) error {
	data, err := json.Marshal(wishlist)
	if err != nil {
		return fmt.Errorf("failed to encode wishlist: %w", err)
	}
	if err := r.store.Set(ctx, Key(userID), data, 0); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}

// Delete removes the persisted wishlist for userID
func (r *KeystoreWishlistRepository) Delete(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, Key(userID)); err != nil {
		return fmt.Errorf("failed to delete wishlist: %w", err)
	}
	return nil
}
