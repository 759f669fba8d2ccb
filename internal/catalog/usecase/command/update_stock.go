package command

import (
	"fmt"

	"github.com/iothub/storefront/internal/catalog/domain"
)

// UpdateStockCommand represents the command to set a product's stock
type UpdateStockCommand struct {
	ID    uint
	Stock int
}

// UpdateStockHandler handles update stock command
type UpdateStockHandler struct {
	repo domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid product id")
	}
	if cmd.Stock < 0 {
		return fmt.Errorf("stock cannot be negative")
	}

	if err := h.repo.UpdateStock(cmd.ID, cmd.Stock); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
