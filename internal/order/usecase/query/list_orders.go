package query

import (
	"fmt"

	"github.com/iothub/storefront/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders. With UserID set
// it returns the caller's own orders; without it, all orders (admin).
type ListOrdersQuery struct {
	UserID string
	Limit  int
	Offset int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(orders domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orders: orders}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var (
		orders []domain.Order
		err    error
	)
	if q.UserID != "" {
		orders, err = h.orders.FindByUserID(q.UserID, q.Limit, q.Offset)
	} else {
		orders, err = h.orders.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
