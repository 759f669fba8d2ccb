package kafka

import "time"

// OrderPlacedEvent is emitted when a checkout completes
type OrderPlacedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	OrderID   string           `json:"order_id"`
	UserID    string           `json:"user_id"`
	Total     float64          `json:"total"`
	Currency  string           `json:"currency"`
	Items     []OrderEventItem `json:"items"`
	Timestamp time.Time        `json:"timestamp"`
}

// OrderEventItem is one order line inside an OrderPlacedEvent
type OrderEventItem struct {
	ProductID   uint    `json:"product_id"`
	Name        string  `json:"name"`
	ProductType string  `json:"product_type"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OTPRequestedEvent is emitted when a verification code needs delivering.
// The notifier owns the downstream SMS/email hand-off.
type OTPRequestedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced  = "order.placed"
	EventTypeOTPRequested = "otp.requested"
)

// Kafka topics
const (
	TopicOrderPlaced  = "order-placed"
	TopicOTPRequested = "otp-requested"
)
