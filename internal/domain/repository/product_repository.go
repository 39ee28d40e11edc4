package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create asigna ID y timestamps. SKU repetido → domain.ErrDuplicate.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// ListByCompany lista los productos con inventario en alguna bodega de la empresa.
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Product, error)
}

// ProductTypeRepository define el puerto de persistencia para ProductType.
type ProductTypeRepository interface {
	Create(ctx context.Context, pt *entity.ProductType) error
	GetByID(ctx context.Context, id int64) (*entity.ProductType, error)
	List(ctx context.Context) ([]*entity.ProductType, error)
}

// BundleRepository componentes de productos compuestos.
type BundleRepository interface {
	AddComponent(ctx context.Context, b *entity.ProductBundle) error
	ListComponents(ctx context.Context, bundleProductID int64) ([]*entity.ProductBundle, error)
}
