package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, warehouse_id, quantity, low_stock_threshold, last_restocked_at, created_at, updated_at`

// InventoryRepo implementación del puerto InventoryRepository (pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de stock por bodega.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila de inventario del par (producto, bodega).
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, low_stock_threshold, last_restocked_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		inv.ProductID, inv.WarehouseID, inv.Quantity, inv.LowStockThreshold, inv.LastRestockedAt,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.NewValidationError("quantity", "no puede ser negativa")
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Get lee la fila sin bloquear.
func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	return r.getOne(ctx, query, productID, warehouseID)
}

// EnsureRow inserta la fila en 0 si no existe y la bloquea. Dos inserciones concurrentes del mismo par
// no fallan: la segunda espera al commit de la primera y lee su fila.
func (r *InventoryRepo) EnsureRow(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	insert := `
		INSERT INTO inventory (product_id, warehouse_id, quantity)
		VALUES ($1, $2, 0)
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, insert, productID, warehouseID); err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ensure inventory: %w", err)
	}
	inv, err := r.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.getOne(ctx, query, productID, warehouseID)
}

// UpdateQuantity persiste la cantidad y la fecha de último reabastecimiento.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventory
		SET quantity = $2, last_restocked_at = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, inv.ID, inv.Quantity, inv.LastRestockedAt).Scan(&inv.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// SetThreshold fija o limpia el override de umbral de bajo stock.
func (r *InventoryRepo) SetThreshold(ctx context.Context, productID, warehouseID int64, threshold *int) error {
	query := `
		UPDATE inventory SET low_stock_threshold = $3, updated_at = NOW()
		WHERE product_id = $1 AND warehouse_id = $2`
	cmd, err := r.q.Exec(ctx, query, productID, warehouseID, threshold)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("low_stock_threshold", "debe ser mayor o igual a 0")
		}
		return fmt.Errorf("set inventory threshold: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity, &inv.LowStockThreshold,
		&inv.LastRestockedAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}
