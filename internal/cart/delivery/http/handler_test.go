package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iothub/storefront/internal/cart/domain"
)

func TestCartViewCarriesUnitCount(t *testing.T) {
	cart := domain.New()
	cart.AddItem(domain.Item{ProductID: 1, Name: "ESP32 DevKit", Price: 450})
	cart.AddItem(domain.Item{ProductID: 1})
	cart.AddItem(domain.Item{ProductID: 2, Name: "4-Channel Relay", Price: 220})

	data, err := json.Marshal(newCartView(cart))
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(3), out["count"], "badge count is units, not lines")
	assert.Equal(t, 1120.0, out["total"])
	assert.Len(t, out["items"], 2)
}

func TestCartViewEmptyCart(t *testing.T) {
	data, err := json.Marshal(newCartView(domain.New()))
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, float64(0), out["count"])
	assert.Len(t, out["items"], 0)
}
