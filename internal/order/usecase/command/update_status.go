package command

import (
	"fmt"

	"github.com/iothub/storefront/internal/order/domain"
)

// UpdateStatusCommand represents the command to change an order's status
type UpdateStatusCommand struct {
	ID     uint
	Status string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	orders domain.OrderRepository
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(orders domain.OrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{orders: orders}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(cmd UpdateStatusCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid order id")
	}

	switch cmd.Status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled:
	default:
		return fmt.Errorf("invalid status")
	}

	if err := h.orders.UpdateStatus(cmd.ID, cmd.Status); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	return nil
}
