package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/iothub/storefront/internal/cart/domain"
	cartrepo "github.com/iothub/storefront/internal/cart/repository"
	"github.com/iothub/storefront/internal/order/domain"
	"github.com/iothub/storefront/pkg/keystore"
	"github.com/iothub/storefront/pkg/links"
)

// fakeOrderRepository records created orders in memory
type fakeOrderRepository struct {
	orders []*domain.Order
}

func (f *fakeOrderRepository) Create(order *domain.Order) error {
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepository) FindByID(id uint) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, fmt.Errorf("order not found")
}

func (f *fakeOrderRepository) FindByReference(reference string) (*domain.Order, error) {
	for _, o := range f.orders {
		if o.Reference == reference {
			return o, nil
		}
	}
	return nil, fmt.Errorf("order not found")
}

func (f *fakeOrderRepository) FindByUserID(userID string, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) FindAll(limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepository) UpdateStatus(id uint, status string) error {
	o, err := f.FindByID(id)
	if err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepository) Count() (int64, error) {
	return int64(len(f.orders)), nil
}

func testUPIConfig() links.UPIConfig {
	return links.UPIConfig{PayeeAddress: "store@upi", PayeeName: "IoT Components Hub"}
}

func seedCart(t *testing.T, carts cartrepo.CartRepository, userID string) {
	t.Helper()
	cart := cartdomain.New()
	cart.AddItem(cartdomain.Item{ProductID: 1, Name: "ESP32 DevKit", Price: 450, ProductType: "physical"})
	cart.AddItem(cartdomain.Item{ProductID: 1})
	cart.AddItem(cartdomain.Item{ProductID: 2, Name: "4-Channel Relay", Price: 220, ProductType: "physical"})
	require.NoError(t, carts.Save(context.Background(), userID, cart))
}

func TestPlaceOrder(t *testing.T) {
	orders := &fakeOrderRepository{}
	carts := cartrepo.NewKeystoreCartRepository(keystore.NewMemoryStore())
	seedCart(t, carts, "u-1")

	handler := NewPlaceOrderHandler(orders, carts, nil, testUPIConfig(), "919000000000", "support@iothub.example.com")

	result, err := handler.Handle(context.Background(), PlaceOrderCommand{UserID: "u-1"})
	require.NoError(t, err)

	order := result.Order
	assert.True(t, strings.HasPrefix(order.Reference, "ORD-"))
	assert.Equal(t, "u-1", order.UserID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, 1120.0, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)

	assert.Contains(t, result.UPILink, "upi://pay?")
	assert.Contains(t, result.UPILink, order.Reference)
	assert.Contains(t, result.WhatsAppLink, "https://wa.me/919000000000")
	assert.True(t, strings.HasPrefix(result.MailtoLink, "mailto:support@iothub.example.com?"))
	assert.Contains(t, result.MailtoLink, "subject=Order+"+order.Reference)
}

func TestPlaceOrderClearsCart(t *testing.T) {
	orders := &fakeOrderRepository{}
	carts := cartrepo.NewKeystoreCartRepository(keystore.NewMemoryStore())
	seedCart(t, carts, "u-1")

	handler := NewPlaceOrderHandler(orders, carts, nil, testUPIConfig(), "919000000000", "support@iothub.example.com")

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{UserID: "u-1"})
	require.NoError(t, err)

	cart, err := carts.Load(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orders := &fakeOrderRepository{}
	carts := cartrepo.NewKeystoreCartRepository(keystore.NewMemoryStore())

	handler := NewPlaceOrderHandler(orders, carts, nil, testUPIConfig(), "919000000000", "support@iothub.example.com")

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{UserID: "u-1"})
	assert.ErrorContains(t, err, "cart is empty")
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderRequiresUser(t *testing.T) {
	handler := NewPlaceOrderHandler(&fakeOrderRepository{}, cartrepo.NewKeystoreCartRepository(keystore.NewMemoryStore()), nil, testUPIConfig(), "919000000000", "support@iothub.example.com")

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{})
	assert.Error(t, err)
}

func TestUpdateStatus(t *testing.T) {
	orders := &fakeOrderRepository{}
	require.NoError(t, orders.Create(&domain.Order{Reference: "ORD-1", UserID: "u-1", Status: domain.StatusPending}))

	handler := NewUpdateStatusHandler(orders)

	require.NoError(t, handler.Handle(UpdateStatusCommand{ID: 1, Status: domain.StatusConfirmed}))

	stored, err := orders.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	handler := NewUpdateStatusHandler(&fakeOrderRepository{})

	assert.Error(t, handler.Handle(UpdateStatusCommand{ID: 1, Status: "shipped-to-mars"}))
	assert.Error(t, handler.Handle(UpdateStatusCommand{Status: domain.StatusConfirmed}))
}
