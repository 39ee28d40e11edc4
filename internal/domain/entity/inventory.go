package entity

import "time"

// Inventory stock actual de un producto en una bodega (una fila por par producto-bodega).
// LowStockThreshold nil significa "usar el default del tipo de producto".
type Inventory struct {
	ID                int64
	ProductID         int64
	WarehouseID       int64
	Quantity          int
	LowStockThreshold *int
	LastRestockedAt   *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
