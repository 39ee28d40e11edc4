package inventory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (sale, restock, adjustment, transfer) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           *logger.Logger
	now           func() time.Time
	newID         func() string
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log.Named("inventory"),
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithClock reemplaza el reloj usado para fechas de venta y reabastecimiento.
func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	cp := *uc
	cp.now = now
	return &cp
}

// MovementInput entrada para registrar un movimiento.
// sale/restock/adjustment usan WarehouseID; transfer usa FromWarehouseID y ToWarehouseID.
// En adjustment Quantity es el delta con signo.
type MovementInput struct {
	CompanyID       int64
	UserID          int64
	Role            string
	Type            string
	ProductID       int64
	WarehouseID     int64
	FromWarehouseID int64
	ToWarehouseID   int64
	Quantity        int
	ReferenceID     *int64
	Notes           string
	OrderID         string
	CustomerID      *int64
}

// MovementResult filas de historial escritas por el movimiento.
type MovementResult struct {
	CorrelationID string
	Transactions  []*entity.InventoryTransaction
	Sale          *entity.Sale
}

// RegisterMovement valida la entrada, verifica producto y bodegas de la empresa y aplica
// el movimiento en una sola transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	if in.Role == entity.RoleVendedor && in.Type != entity.TransactionTypeSale {
		return nil, domain.ErrForbidden
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: get product: %w", domain.ErrUnavailable, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	warehouses := []int64{in.WarehouseID}
	if in.Type == entity.TransactionTypeTransfer {
		warehouses = []int64{in.FromWarehouseID, in.ToWarehouseID}
	}
	for _, id := range warehouses {
		wh, err := uc.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w: get warehouse: %w", domain.ErrUnavailable, err)
		}
		if wh == nil || wh.CompanyID != in.CompanyID {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	res := &MovementResult{CorrelationID: uc.newID()}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		saleRepo repository.SaleRepository,
		_ repository.ProductRepository,
	) error {
		m := &movement{ctx: ctx, in: in, now: now, res: res, invRepo: invRepo, txnRepo: txnRepo}
		switch in.Type {
		case entity.TransactionTypeSale:
			return m.sale(saleRepo)
		case entity.TransactionTypeRestock:
			return m.restock()
		case entity.TransactionTypeAdjustment:
			return m.adjustment()
		case entity.TransactionTypeTransfer:
			return m.transfer()
		}
		return domain.NewValidationError("type", "tipo de movimiento no soportado")
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("correlation_id", res.CorrelationID).
		Str("type", in.Type).
		Int64("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Msg("movimiento de inventario registrado")
	return res, nil
}

func validateMovement(in MovementInput) error {
	if in.ProductID <= 0 {
		return domain.NewValidationError("product_id", "es obligatorio")
	}
	switch in.Type {
	case entity.TransactionTypeSale, entity.TransactionTypeRestock:
		if in.WarehouseID <= 0 {
			return domain.NewValidationError("warehouse_id", "es obligatorio")
		}
		if in.Quantity <= 0 {
			return domain.NewValidationError("quantity", "debe ser mayor que 0")
		}
	case entity.TransactionTypeAdjustment:
		if in.WarehouseID <= 0 {
			return domain.NewValidationError("warehouse_id", "es obligatorio")
		}
		if in.Quantity == 0 {
			return domain.NewValidationError("quantity", "el ajuste no puede ser 0")
		}
	case entity.TransactionTypeTransfer:
		if in.FromWarehouseID <= 0 || in.ToWarehouseID <= 0 {
			return domain.NewValidationError("from_warehouse_id", "origen y destino son obligatorios")
		}
		if in.FromWarehouseID == in.ToWarehouseID {
			return domain.NewValidationError("to_warehouse_id", "debe ser distinta del origen")
		}
		if in.Quantity <= 0 {
			return domain.NewValidationError("quantity", "debe ser mayor que 0")
		}
	default:
		return domain.NewValidationError("type", "debe ser sale, restock, adjustment o transfer")
	}
	// quantity e inventory_transactions.quantity_change son INTEGER.
	if in.Quantity > math.MaxInt32 || in.Quantity < -math.MaxInt32 {
		return domain.NewValidationError("quantity", fmt.Sprintf("el valor absoluto no puede superar %d", math.MaxInt32))
	}
	return nil
}

// movement estado de un movimiento dentro de la transacción.
type movement struct {
	ctx     context.Context
	in      MovementInput
	now     time.Time
	res     *MovementResult
	invRepo repository.InventoryRepository
	txnRepo repository.InventoryTransactionRepository
}

// sale: bloquea fila, verifica stock, descuenta, registra venta y transacción.
func (m *movement) sale(saleRepo repository.SaleRepository) error {
	inv, err := m.lock(m.in.WarehouseID, false)
	if err != nil {
		return err
	}
	if inv.Quantity < m.in.Quantity {
		return domain.ErrInsufficientStock
	}
	sale := &entity.Sale{
		ProductID:   m.in.ProductID,
		WarehouseID: m.in.WarehouseID,
		Quantity:    m.in.Quantity,
		SaleDate:    m.now,
		OrderID:     m.in.OrderID,
		CustomerID:  m.in.CustomerID,
	}
	if err := saleRepo.Create(m.ctx, sale); err != nil {
		return err
	}
	m.res.Sale = sale
	ref := m.in.ReferenceID
	if ref == nil {
		ref = &sale.ID
	}
	return m.apply(inv, -m.in.Quantity, entity.TransactionTypeSale, ref)
}

// restock: suma stock y marca la fecha de reabastecimiento. Crea la fila si la bodega no la tenía.
func (m *movement) restock() error {
	inv, err := m.lock(m.in.WarehouseID, true)
	if err != nil {
		return err
	}
	restockedAt := m.now
	inv.LastRestockedAt = &restockedAt
	return m.apply(inv, m.in.Quantity, entity.TransactionTypeRestock, m.in.ReferenceID)
}

// adjustment: delta con signo; el resultado no puede quedar negativo.
func (m *movement) adjustment() error {
	inv, err := m.lock(m.in.WarehouseID, false)
	if err != nil {
		return err
	}
	if inv.Quantity+m.in.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	return m.apply(inv, m.in.Quantity, entity.TransactionTypeAdjustment, m.in.ReferenceID)
}

// transfer: bloquea ambas filas en orden de bodega, resta en origen y suma en destino.
// Las dos transacciones comparten correlation_id.
func (m *movement) transfer() error {
	from, to := m.in.FromWarehouseID, m.in.ToWarehouseID
	var origin, dest *entity.Inventory
	var err error
	if from < to {
		if origin, err = m.lock(from, false); err != nil {
			return err
		}
		if dest, err = m.lock(to, true); err != nil {
			return err
		}
	} else {
		if dest, err = m.lock(to, true); err != nil {
			return err
		}
		if origin, err = m.lock(from, false); err != nil {
			return err
		}
	}
	if origin.Quantity < m.in.Quantity {
		return domain.ErrInsufficientStock
	}
	if err := m.apply(origin, -m.in.Quantity, entity.TransactionTypeTransfer, m.in.ReferenceID); err != nil {
		return err
	}
	return m.apply(dest, m.in.Quantity, entity.TransactionTypeTransfer, m.in.ReferenceID)
}

// lock obtiene la fila con FOR UPDATE. Con create=true la fila se crea en 0 si no existe.
func (m *movement) lock(warehouseID int64, create bool) (*entity.Inventory, error) {
	if create {
		return m.invRepo.EnsureRow(m.ctx, m.in.ProductID, warehouseID)
	}
	inv, err := m.invRepo.GetForUpdate(m.ctx, m.in.ProductID, warehouseID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// apply actualiza la cantidad y agrega la transacción con el antes/después.
func (m *movement) apply(inv *entity.Inventory, delta int, txType string, ref *int64) error {
	before := inv.Quantity
	if int64(before)+int64(delta) > math.MaxInt32 {
		return domain.NewValidationError("quantity", fmt.Sprintf("el stock resultante no puede superar %d", math.MaxInt32))
	}
	inv.Quantity = before + delta
	if err := m.invRepo.UpdateQuantity(m.ctx, inv); err != nil {
		return err
	}
	var createdBy *int64
	if m.in.UserID > 0 {
		uid := m.in.UserID
		createdBy = &uid
	}
	txn := &entity.InventoryTransaction{
		CorrelationID:  m.res.CorrelationID,
		ProductID:      inv.ProductID,
		WarehouseID:    inv.WarehouseID,
		Type:           txType,
		QuantityChange: delta,
		QuantityBefore: before,
		QuantityAfter:  inv.Quantity,
		ReferenceID:    ref,
		Notes:          m.in.Notes,
		CreatedBy:      createdBy,
	}
	if err := m.txnRepo.Create(m.ctx, txn); err != nil {
		return err
	}
	m.res.Transactions = append(m.res.Transactions, txn)
	return nil
}
