package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sensorKit() Item {
	return Item{ProductID: 1, Name: "ESP32 DevKit", Price: 450, ProductType: "physical"}
}

func relayBoard() Item {
	return Item{ProductID: 2, Name: "4-Channel Relay", Price: 220, ProductType: "physical"}
}

func TestAddItemNewLine(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 450.0, cart.Total)
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.AddItem(sensorKit())
	cart.AddItem(sensorKit())

	assert.Len(t, cart.Items, 1, "same product must not create a second line")
	assert.Equal(t, 3, cart.Quantity(1))
	assert.Equal(t, 1350.0, cart.Total)
}

func TestAddItemKeepsFirstSnapshot(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())

	repriced := sensorKit()
	repriced.Price = 999
	cart.AddItem(repriced)

	// The line keeps the price captured at first add
	assert.Equal(t, 450.0, cart.Items[0].Price)
	assert.Equal(t, 900.0, cart.Total)
}

func TestRemoveItem(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.AddItem(relayBoard())

	cart.RemoveItem(1)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)
	assert.Equal(t, 220.0, cart.Total)
}

func TestRemoveItemAbsentProductIsNoop(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())

	cart.RemoveItem(99)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 450.0, cart.Total)
}

func TestUpdateQuantity(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())

	cart.UpdateQuantity(1, 5)

	assert.Equal(t, 5, cart.Quantity(1))
	assert.Equal(t, 2250.0, cart.Total)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.AddItem(relayBoard())

	cart.UpdateQuantity(1, 0)

	assert.Equal(t, 0, cart.Quantity(1))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 220.0, cart.Total)
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())

	cart.UpdateQuantity(1, -3)

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0.0, cart.Total)
}

func TestClear(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.AddItem(relayBoard())

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, 0.0, cart.Total)
}

func TestCountSumsUnits(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.AddItem(sensorKit())
	cart.AddItem(relayBoard())

	assert.Equal(t, 3, cart.Count())
}

func TestRecomputeFixesStaleTotal(t *testing.T) {
	cart := New()
	cart.AddItem(sensorKit())
	cart.Total = 12345 // simulates a tampered or stale persisted total

	cart.Recompute()

	assert.Equal(t, 450.0, cart.Total)
}
