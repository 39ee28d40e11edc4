package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeInitialStock = "initial_stock"
	TransactionTypeSale         = "sale"
	TransactionTypeRestock      = "restock"
	TransactionTypeAdjustment   = "adjustment"
	TransactionTypeTransfer     = "transfer"
)

// InventoryTransaction registro de auditoría de un cambio de cantidad en Inventory.
// Solo se inserta; nunca se actualiza ni se borra.
// QuantityBefore + QuantityChange == QuantityAfter.
type InventoryTransaction struct {
	ID             int64
	CorrelationID  string // agrupa las filas de una misma operación (un traslado escribe dos)
	ProductID      int64
	WarehouseID    int64
	Type           string
	QuantityChange int
	QuantityBefore int
	QuantityAfter  int
	ReferenceID    *int64
	Notes          string
	CreatedAt      time.Time
	CreatedBy      *int64
}
