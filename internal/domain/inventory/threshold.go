package inventory

// DefaultLowStockThreshold umbral del sistema cuando ni la fila de inventario ni el tipo
// de producto definen uno.
const DefaultLowStockThreshold = 10

// ResolveThreshold devuelve el primer umbral no nulo en orden:
// override de inventario → default del tipo de producto → default del sistema.
// Valores negativos se recortan a 0; nunca falla.
func ResolveThreshold(override, productTypeDefault *int, systemDefault int) int {
	switch {
	case override != nil:
		return clampNonNegative(*override)
	case productTypeDefault != nil:
		return clampNonNegative(*productTypeDefault)
	default:
		return clampNonNegative(systemDefault)
	}
}

// IsLowStock indica si quantity está en o por debajo del umbral.
func IsLowStock(quantity, threshold int) bool {
	return quantity <= threshold
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
