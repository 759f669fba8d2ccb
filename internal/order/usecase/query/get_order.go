package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/order/domain"
)

// GetOrderQuery represents the query to get an order by reference
type GetOrderQuery struct {
	Reference string
	// UserID restricts the lookup to the caller's own orders when set
	UserID string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	if q.Reference == "" {
		return nil, fmt.Errorf("order reference is required")
	}

	order, err := h.orders.FindByReference(q.Reference)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	if q.UserID != "" && order.UserID != q.UserID {
		return nil, fmt.Errorf("order not found")
	}
	return order, nil
}
