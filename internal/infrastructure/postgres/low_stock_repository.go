package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.LowStockRepository = (*LowStockRepo)(nil)

// LowStockRepo consulta de candidatos del motor de alertas (solo lectura).
type LowStockRepo struct {
	q Querier
}

// NewLowStockRepository construye el adaptador de lectura de alertas.
func NewLowStockRepository(q Querier) *LowStockRepo {
	return &LowStockRepo{q: q}
}

// lowStockCandidatesSQL une inventario, bodega, producto, tipo y proveedor con la suma de
// ventas de la ventana en una sola consulta. El prefiltro usa la misma precedencia de
// umbral que el motor; el motor vuelve a evaluar cada fila.
const lowStockCandidatesSQL = `
	WITH recent_sales AS (
		SELECT s.product_id, s.warehouse_id, SUM(s.quantity)::bigint AS units_sold
		FROM sales s
		WHERE s.warehouse_id = ANY($1)
		  AND s.sale_date >= $2
		  AND s.sale_date <= $3
		GROUP BY s.product_id, s.warehouse_id
	)
	SELECT i.id, p.id, p.sku, p.name, w.id, w.name, i.quantity,
	       i.low_stock_threshold, pt.default_low_stock_threshold,
	       sup.id, sup.name, sup.contact_email,
	       COALESCE(rs.units_sold, 0)
	FROM inventory i
	JOIN warehouses w ON w.id = i.warehouse_id
	JOIN products p ON p.id = i.product_id
	LEFT JOIN product_types pt ON pt.id = p.product_type_id
	LEFT JOIN suppliers sup ON sup.id = p.supplier_id
	LEFT JOIN recent_sales rs ON rs.product_id = i.product_id AND rs.warehouse_id = i.warehouse_id
	WHERE i.warehouse_id = ANY($1)
	  AND i.quantity <= GREATEST(COALESCE(i.low_stock_threshold, pt.default_low_stock_threshold, $4::int), 0)
	ORDER BY p.sku, w.id`

// ListCandidates devuelve las filas en o bajo umbral de las bodegas indicadas.
func (r *LowStockRepo) ListCandidates(ctx context.Context, q repository.LowStockQuery) ([]repository.LowStockCandidate, error) {
	if len(q.WarehouseIDs) == 0 {
		return []repository.LowStockCandidate{}, nil
	}
	rows, err := r.q.Query(ctx, lowStockCandidatesSQL, q.WarehouseIDs, q.From, q.To, q.SystemDefault)
	if err != nil {
		return nil, fmt.Errorf("query low stock candidates: %w", err)
	}
	defer rows.Close()

	list := []repository.LowStockCandidate{}
	for rows.Next() {
		var c repository.LowStockCandidate
		if err := rows.Scan(
			&c.InventoryID, &c.ProductID, &c.SKU, &c.ProductName, &c.WarehouseID, &c.WarehouseName, &c.Quantity,
			&c.ThresholdOverride, &c.TypeDefault,
			&c.SupplierID, &c.SupplierName, &c.SupplierEmail,
			&c.UnitsSold,
		); err != nil {
			return nil, fmt.Errorf("scan low stock candidate: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate low stock candidates: %w", err)
	}
	return list, nil
}
