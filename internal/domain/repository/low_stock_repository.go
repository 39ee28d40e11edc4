package repository

import (
	"context"
	"time"
)

// LowStockCandidate fila cruda de la consulta de candidatos a alerta: inventario con su
// bodega, producto, tipo, proveedor principal y el total vendido en la ventana.
// Los campos nullable del esquema llegan como punteros.
type LowStockCandidate struct {
	InventoryID       int64
	ProductID         int64
	SKU               string
	ProductName       string
	WarehouseID       int64
	WarehouseName     string
	Quantity          int
	ThresholdOverride *int
	TypeDefault       *int
	SupplierID        *int64
	SupplierName      *string
	SupplierEmail     *string
	UnitsSold         int64
}

// LowStockQuery parámetros de la consulta de candidatos.
// From y To son inclusivos. SystemDefault se usa solo para el prefiltro en SQL.
type LowStockQuery struct {
	WarehouseIDs  []int64
	From          time.Time
	To            time.Time
	SystemDefault int
}

// LowStockRepository consulta de solo lectura para el motor de alertas.
type LowStockRepository interface {
	ListCandidates(ctx context.Context, q LowStockQuery) ([]LowStockCandidate, error)
}
