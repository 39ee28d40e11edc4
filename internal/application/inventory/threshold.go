package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ThresholdUseCase administra el override de umbral de bajo stock por fila de inventario.
type ThresholdUseCase struct {
	invRepo       repository.InventoryRepository
	warehouseRepo repository.WarehouseRepository
}

// NewThresholdUseCase construye el caso de uso.
func NewThresholdUseCase(invRepo repository.InventoryRepository, warehouseRepo repository.WarehouseRepository) *ThresholdUseCase {
	return &ThresholdUseCase{invRepo: invRepo, warehouseRepo: warehouseRepo}
}

// SetThreshold fija el override (nil lo limpia y vuelve al default del tipo).
func (uc *ThresholdUseCase) SetThreshold(ctx context.Context, companyID, productID, warehouseID int64, threshold *int) error {
	if threshold != nil && *threshold < 0 {
		return domain.NewValidationError("low_stock_threshold", "debe ser mayor o igual a 0")
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return fmt.Errorf("%w: get warehouse: %w", domain.ErrUnavailable, err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return domain.ErrNotFound
	}
	inv, err := uc.invRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("%w: get inventory: %w", domain.ErrUnavailable, err)
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if sameThreshold(inv.LowStockThreshold, threshold) {
		return nil
	}
	return uc.invRepo.SetThreshold(ctx, productID, warehouseID, threshold)
}

func sameThreshold(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
