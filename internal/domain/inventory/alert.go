package inventory

import "sort"

// SupplierContact proyección del proveedor principal para reordenar.
type SupplierContact struct {
	ID           int64
	Name         string
	ContactEmail *string
}

// Alert una alerta de bajo stock para un par (producto, bodega).
// Productos en varias bodegas generan alertas independientes; nunca se agregan cantidades.
type Alert struct {
	ProductID         int64
	SKU               string
	ProductName       string
	WarehouseID       int64
	WarehouseName     string
	Quantity          int
	Threshold         int
	AverageDailySales float64
	DaysUntilStockout *float64 // nil = sin ventas en la ventana
	Supplier          *SupplierContact
}

// SortAlerts ordena in-place: DaysUntilStockout ascendente con nil al final,
// desempate por SKU y luego por WarehouseID. El orden es determinista.
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alertLess(alerts[i], alerts[j])
	})
}

func alertLess(a, b Alert) bool {
	switch {
	case a.DaysUntilStockout != nil && b.DaysUntilStockout == nil:
		return true
	case a.DaysUntilStockout == nil && b.DaysUntilStockout != nil:
		return false
	case a.DaysUntilStockout != nil && *a.DaysUntilStockout != *b.DaysUntilStockout:
		return *a.DaysUntilStockout < *b.DaysUntilStockout
	}
	if a.SKU != b.SKU {
		return a.SKU < b.SKU
	}
	return a.WarehouseID < b.WarehouseID
}
