package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Warehouse, error)
	// ListIDsByCompany devuelve todos los IDs de bodega de la empresa, sin paginar.
	ListIDsByCompany(ctx context.Context, companyID int64) ([]int64, error)
}
