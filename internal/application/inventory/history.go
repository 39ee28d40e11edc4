package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// HistoryUseCase consulta el historial de transacciones de inventario de una empresa.
type HistoryUseCase struct {
	txnRepo repository.InventoryTransactionRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(txnRepo repository.InventoryTransactionRepository) *HistoryUseCase {
	return &HistoryUseCase{txnRepo: txnRepo}
}

// List devuelve las transacciones más recientes primero.
func (uc *HistoryUseCase) List(ctx context.Context, filter repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	if filter.CompanyID <= 0 {
		return nil, domain.NewValidationError("company_id", "es obligatorio")
	}
	list, err := uc.txnRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", domain.ErrUnavailable, err)
	}
	return list, nil
}
