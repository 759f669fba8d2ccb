package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func item(id uint, name string) Item {
	return Item{ProductID: id, Name: name, Price: 100, AddedAt: time.Now()}
}

func TestAdd(t *testing.T) {
	w := New()

	assert.True(t, w.Add(item(1, "ESP32 DevKit")))
	assert.True(t, w.Contains(1))
	assert.Len(t, w.Items, 1)
}

func TestAddDuplicateIsNoop(t *testing.T) {
	w := New()

	assert.True(t, w.Add(item(1, "ESP32 DevKit")))
	assert.False(t, w.Add(item(1, "ESP32 DevKit")), "duplicate add must report false")
	assert.Len(t, w.Items, 1)
}

func TestAddPreservesOrder(t *testing.T) {
	w := New()
	w.Add(item(3, "BME280 Sensor"))
	w.Add(item(1, "ESP32 DevKit"))
	w.Add(item(2, "4-Channel Relay"))

	// A duplicate add must not reorder anything
	w.Add(item(1, "ESP32 DevKit"))

	ids := []uint{}
	for _, it := range w.Items {
		ids = append(ids, it.ProductID)
	}
	assert.Equal(t, []uint{3, 1, 2}, ids)
}

func TestRemove(t *testing.T) {
	w := New()
	w.Add(item(1, "ESP32 DevKit"))
	w.Add(item(2, "4-Channel Relay"))

	w.Remove(1)

	assert.False(t, w.Contains(1))
	assert.True(t, w.Contains(2))
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	w := New()
	w.Add(item(1, "ESP32 DevKit"))

	w.Remove(99)

	assert.Len(t, w.Items, 1)
}

func TestClear(t *testing.T) {
	w := New()
	w.Add(item(1, "ESP32 DevKit"))
	w.Add(item(2, "4-Channel Relay"))

	w.Clear()

	assert.Empty(t, w.Items)
}
