package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
	_ repository.SaleRepository                 = (*SaleRepo)(nil)
)

// InventoryTransactionRepo historial de inventario (solo INSERT y SELECT).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador del historial.
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta una fila de historial.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	correlationID, err := uuid.Parse(t.CorrelationID)
	if err != nil {
		return domain.NewValidationError("correlation_id", "debe ser un UUID")
	}
	query := `
		INSERT INTO inventory_transactions (
			correlation_id, product_id, warehouse_id, transaction_type,
			quantity_change, quantity_before, quantity_after, reference_id, notes, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err = r.q.QueryRow(ctx, query,
		correlationID, t.ProductID, t.WarehouseID, t.Type,
		t.QuantityChange, t.QuantityBefore, t.QuantityAfter, t.ReferenceID, t.Notes, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("transaction_type", "transacción de inventario inconsistente")
		}
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// List devuelve el historial de la empresa, más reciente primero.
func (r *InventoryTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	limit, offset := normalizeLimit(f.Limit, f.Offset)

	conds := []string{"w.company_id = $1"}
	args := []any{f.CompanyID}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		conds = append(conds, fmt.Sprintf("t.product_id = $%d", len(args)))
	}
	if f.WarehouseID != nil {
		args = append(args, *f.WarehouseID)
		conds = append(conds, fmt.Sprintf("t.warehouse_id = $%d", len(args)))
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
		SELECT t.id, t.correlation_id::text, t.product_id, t.warehouse_id, t.transaction_type,
		       t.quantity_change, t.quantity_before, t.quantity_after, t.reference_id,
		       t.notes, t.created_at, t.created_by
		FROM inventory_transactions t
		JOIN warehouses w ON w.id = t.warehouse_id
		WHERE %s
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $%d OFFSET $%d`, strings.Join(conds, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryTransaction{}
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(
			&t.ID, &t.CorrelationID, &t.ProductID, &t.WarehouseID, &t.Type,
			&t.QuantityChange, &t.QuantityBefore, &t.QuantityAfter, &t.ReferenceID,
			&t.Notes, &t.CreatedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SaleRepo eventos de venta.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una venta; SaleDate cero usa NOW().
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (product_id, warehouse_id, quantity, sale_date, order_id, customer_id)
		VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()), NULLIF($5::text, ''), $6)
		RETURNING id, sale_date`
	var saleDate any
	if !s.SaleDate.IsZero() {
		saleDate = s.SaleDate
	}
	err := r.q.QueryRow(ctx, query,
		s.ProductID, s.WarehouseID, s.Quantity, saleDate, s.OrderID, s.CustomerID,
	).Scan(&s.ID, &s.SaleDate)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("quantity", "debe ser mayor que 0")
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}
