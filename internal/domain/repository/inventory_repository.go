package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InventoryRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// Create inserta la fila; par (producto, bodega) repetido → domain.ErrDuplicate.
	Create(ctx context.Context, inv *entity.Inventory) error
	// Get lee la fila sin bloquear. Devuelve nil, nil si no existe.
	Get(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	// EnsureRow crea la fila en 0 si falta y la devuelve bloqueada (FOR UPDATE).
	EnsureRow(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error)
	// UpdateQuantity persiste Quantity, LastRestockedAt y UpdatedAt.
	UpdateQuantity(ctx context.Context, inv *entity.Inventory) error
	// SetThreshold fija o limpia (nil) el override de umbral. domain.ErrNotFound si no hay fila.
	SetThreshold(ctx context.Context, productID, warehouseID int64, threshold *int) error
}

// TransactionFilter filtros para listar el historial de inventario de una empresa.
type TransactionFilter struct {
	CompanyID   int64
	ProductID   *int64
	WarehouseID *int64
	Limit       int
	Offset      int
}

// InventoryTransactionRepository historial append-only de cambios de stock.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	// List devuelve las transacciones más recientes primero.
	List(ctx context.Context, filter TransactionFilter) ([]*entity.InventoryTransaction, error)
}

// SaleRepository eventos de venta (solo inserción).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
}
