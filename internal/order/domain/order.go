package domain

import "time"

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Order is a placed checkout: an immutable snapshot of the cart at
// purchase time
type Order struct {
	ID        uint        `json:"id"`
	Reference string      `json:"reference"`
	UserID    string      `json:"user_id"`
	Total     float64     `json:"total"`
	Currency  string      `json:"currency"`
	Status    string      `json:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem is one purchased line
type OrderItem struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"-"`
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	ProductType string  `json:"product_type"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByID(id uint) (*Order, error)
	FindByReference(reference string) (*Order, error)
	FindByUserID(userID string, limit, offset int) ([]Order, error)
	FindAll(limit, offset int) ([]Order, error)
	UpdateStatus(id uint, status string) error
	Count() (int64, error)
}
