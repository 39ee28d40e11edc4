package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

func intPtr(n int) *int { return &n }

func TestResolveThreshold_Prioridad(t *testing.T) {
	assert.Equal(t, 5, inventory.ResolveThreshold(intPtr(5), intPtr(20), inventory.DefaultLowStockThreshold),
		"el override de inventario gana sobre el default del tipo")
	assert.Equal(t, 20, inventory.ResolveThreshold(nil, intPtr(20), inventory.DefaultLowStockThreshold),
		"sin override se usa el default del tipo")
	assert.Equal(t, 10, inventory.ResolveThreshold(nil, nil, inventory.DefaultLowStockThreshold),
		"sin override ni tipo se usa el default del sistema")
}

func TestResolveThreshold_OverrideCeroNoEsNulo(t *testing.T) {
	assert.Equal(t, 0, inventory.ResolveThreshold(intPtr(0), intPtr(20), 10))
}

func TestResolveThreshold_NegativosSeRecortan(t *testing.T) {
	assert.Equal(t, 0, inventory.ResolveThreshold(intPtr(-4), intPtr(20), 10))
	assert.Equal(t, 0, inventory.ResolveThreshold(nil, intPtr(-1), 10))
	assert.Equal(t, 0, inventory.ResolveThreshold(nil, nil, -10))
}

func TestIsLowStock_Inclusivo(t *testing.T) {
	assert.True(t, inventory.IsLowStock(4, 10))
	assert.True(t, inventory.IsLowStock(10, 10), "igual al umbral cuenta como bajo stock")
	assert.False(t, inventory.IsLowStock(11, 10))
	assert.True(t, inventory.IsLowStock(0, 0))
}
