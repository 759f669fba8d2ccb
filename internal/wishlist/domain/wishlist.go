package domain

import "time"

// Item is one saved product: a snapshot plus the time it was added
type Item struct {
	ProductID   uint      `json:"product_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	ProductType string    `json:"product_type"`
	AddedAt     time.Time `json:"added_at"`
}

// Wishlist holds a user's saved products, deduplicated by product id
type Wishlist struct {
	Items []Item `json:"items"`
}

// New returns an empty wishlist
func New() *Wishlist {
	return &Wishlist{Items: []Item{}}
}

// Add appends the item unless its product id is already present.
// Returns false for the duplicate no-op; order of existing items is
// never disturbed.
func (w *Wishlist) Add(item Item) bool {
	if w.Contains(item.ProductID) {
		return false
	}
	w.Items = append(w.Items, item)
	return true
}

// Remove drops the item with the given product id
func (w *Wishlist) Remove(productID uint) {
	items := w.Items[:0]
	for _, item := range w.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	w.Items = items
}

// Contains reports whether the product id is already saved
func (w *Wishlist) Contains(productID uint) bool {
	for _, item := range w.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clear empties the wishlist
func (w *Wishlist) Clear() {
	w.Items = []Item{}
}
