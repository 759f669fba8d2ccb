package domain

// Item is one cart line: a product snapshot plus quantity
type Item struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"` // INR, captured at add time
	ImageURL    string  `json:"image_url"`
	ProductType string  `json:"product_type"`
	Quantity    int     `json:"quantity"`
}

// Cart holds a user's cart state. Total is always recomputed from the
// item list after every mutation, never adjusted incrementally.
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem appends the snapshot with quantity 1, or increments the
// quantity of an existing line with the same product id
func (c *Cart) AddItem(snapshot Item) {
	for i := range c.Items {
		if c.Items[i].ProductID == snapshot.ProductID {
			c.Items[i].Quantity++
			c.recompute()
			return
		}
	}
	snapshot.Quantity = 1
	c.Items = append(c.Items, snapshot)
	c.recompute()
}

// RemoveItem drops the line with the given product id
func (c *Cart) RemoveItem(productID uint) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	c.Items = items
	c.recompute()
}

// UpdateQuantity sets the quantity of an existing line. A quantity of
// zero or less removes the line instead of keeping a zero-quantity row.
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.Total = 0
}

// Quantity returns the quantity of the given product, zero if absent
func (c *Cart) Quantity(productID uint) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Count returns the number of units across all lines
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) recompute() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.Total = total
}

// Recompute recalculates the total from the item list. Called after
// loading persisted state so a stale stored total never survives.
func (c *Cart) Recompute() {
	c.recompute()
}
