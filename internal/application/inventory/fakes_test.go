package inventory_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type invKey struct{ product, warehouse int64 }

// memStore simula las tablas tocadas por un movimiento. fakeTxRunner la restaura si fn falla.
type memStore struct {
	inventory map[invKey]entity.Inventory
	txns      []entity.InventoryTransaction
	sales     []entity.Sale
	nextID    int64
	failTxn   bool
	locked    []invKey

	// thresholdWrites cuenta las llamadas a SetThreshold.
	thresholdWrites int
}

func newMemStore() *memStore {
	return &memStore{inventory: map[invKey]entity.Inventory{}, nextID: 100}
}

func (s *memStore) put(productID, warehouseID int64, qty int) {
	s.nextID++
	s.inventory[invKey{productID, warehouseID}] = entity.Inventory{
		ID: s.nextID, ProductID: productID, WarehouseID: warehouseID, Quantity: qty,
	}
}

func (s *memStore) qty(productID, warehouseID int64) int {
	return s.inventory[invKey{productID, warehouseID}].Quantity
}

func (s *memStore) snapshot() *memStore {
	cp := *s
	cp.inventory = make(map[invKey]entity.Inventory, len(s.inventory))
	for k, v := range s.inventory {
		cp.inventory[k] = v
	}
	cp.txns = append([]entity.InventoryTransaction(nil), s.txns...)
	cp.sales = append([]entity.Sale(nil), s.sales...)
	return &cp
}

type fakeTxRunner struct {
	store *memStore
	runs  int
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.runs++
	before := r.store.snapshot()
	repo := &memRepo{s: r.store}
	if err := fn(repo, txnPort{repo}, salePort{repo}, nil); err != nil {
		*r.store = *before
		return err
	}
	return nil
}

// memRepo implementa InventoryRepository sobre memStore.
type memRepo struct{ s *memStore }

func (m *memRepo) Create(_ context.Context, inv *entity.Inventory) error {
	k := invKey{inv.ProductID, inv.WarehouseID}
	if _, ok := m.s.inventory[k]; ok {
		return errors.New("duplicate inventory")
	}
	m.s.nextID++
	inv.ID = m.s.nextID
	m.s.inventory[k] = *inv
	return nil
}

func (m *memRepo) Get(_ context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	inv, ok := m.s.inventory[invKey{productID, warehouseID}]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (m *memRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	m.s.locked = append(m.s.locked, invKey{productID, warehouseID})
	return m.Get(ctx, productID, warehouseID)
}

func (m *memRepo) EnsureRow(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	if _, ok := m.s.inventory[invKey{productID, warehouseID}]; !ok {
		m.s.put(productID, warehouseID, 0)
	}
	return m.GetForUpdate(ctx, productID, warehouseID)
}

func (m *memRepo) UpdateQuantity(_ context.Context, inv *entity.Inventory) error {
	if inv.Quantity < 0 {
		return errors.New("check violation")
	}
	m.s.inventory[invKey{inv.ProductID, inv.WarehouseID}] = *inv
	return nil
}

func (m *memRepo) SetThreshold(_ context.Context, productID, warehouseID int64, threshold *int) error {
	m.s.thresholdWrites++
	k := invKey{productID, warehouseID}
	inv, ok := m.s.inventory[k]
	if !ok {
		return fmt.Errorf("no row")
	}
	inv.LowStockThreshold = threshold
	m.s.inventory[k] = inv
	return nil
}

func (m *memRepo) createTxn(t *entity.InventoryTransaction) error {
	if m.s.failTxn {
		return errors.New("insert inventory transaction: conexión perdida")
	}
	m.s.nextID++
	t.ID = m.s.nextID
	m.s.txns = append(m.s.txns, *t)
	return nil
}

func (m *memRepo) List(_ context.Context, _ repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	out := make([]*entity.InventoryTransaction, 0, len(m.s.txns))
	for i := range m.s.txns {
		out = append(out, &m.s.txns[i])
	}
	return out, nil
}

// Adaptadores para los puertos cuyo Create recibe otro tipo.
type txnPort struct{ *memRepo }

func (p txnPort) Create(_ context.Context, t *entity.InventoryTransaction) error { return p.createTxn(t) }

type salePort struct{ *memRepo }

func (p salePort) Create(_ context.Context, s *entity.Sale) error {
	p.s.nextID++
	s.ID = p.s.nextID
	p.s.sales = append(p.s.sales, *s)
	return nil
}

type fakeProducts struct{ products map[int64]*entity.Product }

func (f *fakeProducts) Create(_ context.Context, _ *entity.Product) error { return nil }
func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProducts) GetBySKU(_ context.Context, _ string) (*entity.Product, error) { return nil, nil }
func (f *fakeProducts) ListByCompany(_ context.Context, _ int64, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouses struct{ warehouses map[int64]*entity.Warehouse }

func (f *fakeWarehouses) Create(_ context.Context, _ *entity.Warehouse) error { return nil }
func (f *fakeWarehouses) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}
func (f *fakeWarehouses) ListByCompany(_ context.Context, _ int64, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) ListIDsByCompany(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}
