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
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)
	_ repository.BundleRepository      = (*BundleRepo)(nil)
)

const productColumns = `p.id, p.sku, p.name, p.description, p.price, p.product_type_id, p.supplier_id, p.is_bundle, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. SKU repetido → ErrDuplicate; tipo o proveedor inexistente → ErrNotFound.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (sku, name, description, price, product_type_id, supplier_id, is_bundle)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.SKU, p.Name, p.Description, p.Price, p.ProductTypeID, p.SupplierID, p.IsBundle,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.NewValidationError("price", "debe ser mayor o igual a 0")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
}

// GetBySKU obtiene un producto por SKU (único global).
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products p WHERE p.sku = $1`, sku)
}

// ListByCompany lista los productos con inventario en alguna bodega de la empresa.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Product, error) {
	limit, offset = normalizeLimit(limit, offset)
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE EXISTS (
			SELECT 1 FROM inventory i
			JOIN warehouses w ON w.id = i.warehouse_id
			WHERE i.product_id = p.id AND w.company_id = $1
		)
		ORDER BY p.sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.ProductTypeID, &p.SupplierID,
		&p.IsBundle, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductTypeRepo persistencia de tipos de producto.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador de tipos de producto.
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create persiste un tipo. Nombre repetido → ErrDuplicate.
func (r *ProductTypeRepo) Create(ctx context.Context, pt *entity.ProductType) error {
	query := `
		INSERT INTO product_types (name, default_low_stock_threshold, description)
		VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(ctx, query, pt.Name, pt.DefaultLowStockThreshold, pt.Description).Scan(&pt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo por ID.
func (r *ProductTypeRepo) GetByID(ctx context.Context, id int64) (*entity.ProductType, error) {
	query := `SELECT id, name, default_low_stock_threshold, description FROM product_types WHERE id = $1`
	var pt entity.ProductType
	err := r.q.QueryRow(ctx, query, id).Scan(&pt.ID, &pt.Name, &pt.DefaultLowStockThreshold, &pt.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &pt, nil
}

// List lista todos los tipos por nombre.
func (r *ProductTypeRepo) List(ctx context.Context) ([]*entity.ProductType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, default_low_stock_threshold, description FROM product_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	list := []*entity.ProductType{}
	for rows.Next() {
		var pt entity.ProductType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.DefaultLowStockThreshold, &pt.Description); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &pt)
	}
	return list, rows.Err()
}

// BundleRepo persistencia de componentes de productos compuestos.
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador de bundles.
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// AddComponent agrega un componente. Par repetido → ErrDuplicate; autorreferencia → ValidationError.
func (r *BundleRepo) AddComponent(ctx context.Context, b *entity.ProductBundle) error {
	query := `
		INSERT INTO product_bundles (bundle_product_id, component_product_id, quantity)
		VALUES ($1, $2, $3) RETURNING id`
	err := r.q.QueryRow(ctx, query, b.BundleProductID, b.ComponentProductID, b.Quantity).Scan(&b.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.NewValidationError("component_product_id", "componente inválido para el bundle")
		}
		return fmt.Errorf("insert bundle component: %w", err)
	}
	return nil
}

// ListComponents lista los componentes de un bundle.
func (r *BundleRepo) ListComponents(ctx context.Context, bundleProductID int64) ([]*entity.ProductBundle, error) {
	query := `
		SELECT id, bundle_product_id, component_product_id, quantity
		FROM product_bundles WHERE bundle_product_id = $1 ORDER BY component_product_id`
	rows, err := r.q.Query(ctx, query, bundleProductID)
	if err != nil {
		return nil, fmt.Errorf("list bundle components: %w", err)
	}
	defer rows.Close()
	list := []*entity.ProductBundle{}
	for rows.Next() {
		var b entity.ProductBundle
		if err := rows.Scan(&b.ID, &b.BundleProductID, &b.ComponentProductID, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
