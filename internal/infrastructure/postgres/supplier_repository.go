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

var (
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.SupplierProductRepository = (*SupplierProductRepo)(nil)
)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact_email, contact_phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, s.Name, s.ContactEmail, s.ContactPhone, s.Address).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	query := `
		SELECT id, name, contact_email, contact_phone, address, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores por nombre con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	limit, offset = normalizeLimit(limit, offset)
	query := `
		SELECT id, name, contact_email, contact_phone, address, created_at, updated_at
		FROM suppliers ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Supplier{}
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.ContactPhone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SupplierProductRepo ofertas proveedor-producto.
type SupplierProductRepo struct {
	q Querier
}

// NewSupplierProductRepository construye el adaptador de ofertas.
func NewSupplierProductRepository(q Querier) *SupplierProductRepo {
	return &SupplierProductRepo{q: q}
}

// Upsert crea la oferta o actualiza la existente para el par (proveedor, producto).
func (r *SupplierProductRepo) Upsert(ctx context.Context, sp *entity.SupplierProduct) error {
	query := `
		INSERT INTO supplier_products (supplier_id, product_id, supplier_sku, cost_price, lead_time_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (supplier_id, product_id) DO UPDATE SET
			supplier_sku   = EXCLUDED.supplier_sku,
			cost_price     = EXCLUDED.cost_price,
			lead_time_days = EXCLUDED.lead_time_days,
			is_active      = EXCLUDED.is_active
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		sp.SupplierID, sp.ProductID, sp.SupplierSKU, sp.CostPrice, sp.LeadTimeDays, sp.IsActive,
	).Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("upsert supplier product: %w", err)
	}
	return nil
}

// ListByProduct lista las ofertas de un producto, activas primero y luego por costo.
func (r *SupplierProductRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.SupplierProduct, error) {
	query := `
		SELECT id, supplier_id, product_id, supplier_sku, cost_price, lead_time_days, is_active, created_at
		FROM supplier_products WHERE product_id = $1
		ORDER BY is_active DESC, cost_price NULLS LAST, supplier_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list supplier products: %w", err)
	}
	defer rows.Close()
	list := []*entity.SupplierProduct{}
	for rows.Next() {
		var sp entity.SupplierProduct
		if err := rows.Scan(&sp.ID, &sp.SupplierID, &sp.ProductID, &sp.SupplierSKU, &sp.CostPrice,
			&sp.LeadTimeDays, &sp.IsActive, &sp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier product: %w", err)
		}
		list = append(list, &sp)
	}
	return list, rows.Err()
}
