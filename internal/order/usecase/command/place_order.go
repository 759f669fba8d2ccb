package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	cartrepo "github.com/iothub/storefront/internal/cart/repository"
	"github.com/iothub/storefront/internal/order/domain"
	"github.com/iothub/storefront/kafka"
	"github.com/iothub/storefront/pkg/links"
	"github.com/iothub/storefront/pkg/logger"
)

// PlaceOrderCommand represents the command to check out the current cart
type PlaceOrderCommand struct {
	UserID string
}

// PlaceOrderResult carries the created order and the outbound links the
// client renders for payment and follow-up
type PlaceOrderResult struct {
	Order        *domain.Order `json:"order"`
	UPILink      string        `json:"upi_link"`
	WhatsAppLink string        `json:"whatsapp_link"`
	MailtoLink   string        `json:"mailto_link"`
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	orders       domain.OrderRepository
	carts        cartrepo.CartRepository
	publisher    *kafka.Publisher
	upi          links.UPIConfig
	supportNo    string
	supportEmail string
}

// NewPlaceOrderHandler creates a new place order handler. publisher may
// be nil when Kafka is disabled.
func NewPlaceOrderHandler(
	orders domain.OrderRepository,
	carts cartrepo.CartRepository,
	publisher *kafka.Publisher,
	upi links.UPIConfig,
	supportNo string,
	supportEmail string,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:       orders,
		carts:        carts,
		publisher:    publisher,
		upi:          upi,
		supportNo:    supportNo,
		supportEmail: supportEmail,
	}
}

// Handle executes the place order command: snapshot the cart into an
// order row, publish the event, clear the cart, and hand back payment
// links. The cart is only cleared once the order row exists.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	cart, err := h.carts.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	order := &domain.Order{
		Reference: fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		UserID:    cmd.UserID,
		Total:     cart.Total,
		Currency:  "INR",
		Status:    domain.StatusPending,
	}
	for _, line := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   line.ProductID,
			Name:        line.Name,
			ProductType: line.ProductType,
			Price:       line.Price,
			Quantity:    line.Quantity,
		})
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if h.publisher != nil {
		event := kafka.OrderPlacedEvent{
			OrderID:  order.Reference,
			UserID:   order.UserID,
			Total:    order.Total,
			Currency: order.Currency,
		}
		for _, item := range order.Items {
			event.Items = append(event.Items, kafka.OrderEventItem{
				ProductID:   item.ProductID,
				Name:        item.Name,
				ProductType: item.ProductType,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}
		if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
			// The order exists; delivery notification is best-effort
			logger.Warn(ctx).Err(err).Str("reference", order.Reference).Msg("Failed to publish order event")
		}
	}

	if err := h.carts.Delete(ctx, cmd.UserID); err != nil {
		logger.Warn(ctx).Err(err).Str("user_id", cmd.UserID).Msg("Failed to clear cart after checkout")
	}

	inquiry := links.OrderInquiry(order.Reference, order.Total)
	return &PlaceOrderResult{
		Order:        order,
		UPILink:      links.UPIPayment(h.upi, order.Total, order.Reference),
		WhatsAppLink: links.WhatsApp(h.supportNo, inquiry),
		MailtoLink:   links.Mailto(h.supportEmail, fmt.Sprintf("Order %s", order.Reference), inquiry),
	}, nil
}
