package usecase_test

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var errDB = errors.New("conexión rechazada")

// catalog tablas en memoria compartidas por los fakes de este paquete.
type catalog struct {
	companies  map[int64]*entity.Company
	warehouses map[int64]*entity.Warehouse
	products   map[int64]*entity.Product
	types      map[int64]*entity.ProductType
	suppliers  map[int64]*entity.Supplier
	offers     []*entity.SupplierProduct
	bundles    []*entity.ProductBundle
	inventory  []*entity.Inventory
	txns       []*entity.InventoryTransaction
	nextID     int64
	fail       bool
	failTxn    bool
}

func newCatalog() *catalog {
	c := &catalog{
		companies:  map[int64]*entity.Company{1: {ID: 1, Name: "Acme"}, 2: {ID: 2, Name: "Globex"}},
		warehouses: map[int64]*entity.Warehouse{10: {ID: 10, CompanyID: 1, Name: "Principal"}, 20: {ID: 20, CompanyID: 2, Name: "Norte"}},
		products:   map[int64]*entity.Product{},
		types:      map[int64]*entity.ProductType{3: {ID: 3, Name: "Perecederos", DefaultLowStockThreshold: 5}},
		suppliers:  map[int64]*entity.Supplier{7: {ID: 7, Name: "Distribuidora Sur"}},
		nextID:     1000,
	}
	return c
}

func (c *catalog) id() int64 {
	c.nextID++
	return c.nextID
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ c *catalog }

func (r fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) error) error {
	products := make(map[int64]*entity.Product, len(r.c.products))
	for k, v := range r.c.products {
		products[k] = v
	}
	inv, txns := len(r.c.inventory), len(r.c.txns)
	if err := fn(inventoryRepo{r.c}, txnRepo{r.c}, nil, productRepo{r.c}); err != nil {
		r.c.products = products
		r.c.inventory = r.c.inventory[:inv]
		r.c.txns = r.c.txns[:txns]
		return err
	}
	return nil
}

// ── Repos ────────────────────────────────────────────────────────────────────

type companyRepo struct{ c *catalog }

func (r companyRepo) Create(_ context.Context, co *entity.Company) error {
	if r.c.fail {
		return errDB
	}
	for _, existing := range r.c.companies {
		if strings.EqualFold(existing.Name, co.Name) {
			return domain.ErrDuplicate
		}
	}
	co.ID = r.c.id()
	r.c.companies[co.ID] = co
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	if r.c.fail {
		return nil, errDB
	}
	return r.c.companies[id], nil
}

func (r companyRepo) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	if r.c.fail {
		return nil, errDB
	}
	out := make([]*entity.Company, 0, len(r.c.companies))
	for _, co := range r.c.companies {
		out = append(out, co)
	}
	return out, nil
}

type warehouseRepo struct{ c *catalog }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	for _, existing := range r.c.warehouses {
		if existing.CompanyID == w.CompanyID && existing.Name == w.Name {
			return domain.ErrDuplicate
		}
	}
	w.ID = r.c.id()
	r.c.warehouses[w.ID] = w
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	if r.c.fail {
		return nil, errDB
	}
	return r.c.warehouses[id], nil
}

func (r warehouseRepo) ListByCompany(_ context.Context, companyID int64, _, _ int) ([]*entity.Warehouse, error) {
	if r.c.fail {
		return nil, errDB
	}
	var out []*entity.Warehouse
	for _, w := range r.c.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r warehouseRepo) ListIDsByCompany(ctx context.Context, companyID int64) ([]int64, error) {
	list, err := r.ListByCompany(ctx, companyID, 0, 0)
	ids := make([]int64, 0, len(list))
	for _, w := range list {
		ids = append(ids, w.ID)
	}
	return ids, err
}

type productRepo struct{ c *catalog }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.c.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.c.id()
	r.c.products[p.ID] = p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	if r.c.fail {
		return nil, errDB
	}
	return r.c.products[id], nil
}

func (r productRepo) GetBySKU(_ context.Context, code string) (*entity.Product, error) {
	if r.c.fail {
		return nil, errDB
	}
	for _, p := range r.c.products {
		if p.SKU == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r productRepo) ListByCompany(_ context.Context, _ int64, _, _ int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.c.products))
	for _, p := range r.c.products {
		out = append(out, p)
	}
	return out, nil
}

type typeRepo struct{ c *catalog }

func (r typeRepo) Create(_ context.Context, pt *entity.ProductType) error {
	pt.ID = r.c.id()
	r.c.types[pt.ID] = pt
	return nil
}

func (r typeRepo) GetByID(_ context.Context, id int64) (*entity.ProductType, error) {
	return r.c.types[id], nil
}

func (r typeRepo) List(_ context.Context) ([]*entity.ProductType, error) {
	out := make([]*entity.ProductType, 0, len(r.c.types))
	for _, pt := range r.c.types {
		out = append(out, pt)
	}
	return out, nil
}

type supplierRepo struct{ c *catalog }

func (r supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	s.ID = r.c.id()
	r.c.suppliers[s.ID] = s
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	return r.c.suppliers[id], nil
}

func (r supplierRepo) List(_ context.Context, _, _ int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.c.suppliers))
	for _, s := range r.c.suppliers {
		out = append(out, s)
	}
	return out, nil
}

type offerRepo struct{ c *catalog }

func (r offerRepo) Upsert(_ context.Context, sp *entity.SupplierProduct) error {
	for _, existing := range r.c.offers {
		if existing.SupplierID == sp.SupplierID && existing.ProductID == sp.ProductID {
			sp.ID = existing.ID
			*existing = *sp
			return nil
		}
	}
	sp.ID = r.c.id()
	cp := *sp
	r.c.offers = append(r.c.offers, &cp)
	return nil
}

func (r offerRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.SupplierProduct, error) {
	var out []*entity.SupplierProduct
	for _, sp := range r.c.offers {
		if sp.ProductID == productID {
			out = append(out, sp)
		}
	}
	return out, nil
}

type bundleRepo struct{ c *catalog }

func (r bundleRepo) AddComponent(_ context.Context, b *entity.ProductBundle) error {
	for _, existing := range r.c.bundles {
		if existing.BundleProductID == b.BundleProductID && existing.ComponentProductID == b.ComponentProductID {
			return domain.ErrDuplicate
		}
	}
	b.ID = r.c.id()
	r.c.bundles = append(r.c.bundles, b)
	return nil
}

func (r bundleRepo) ListComponents(_ context.Context, bundleID int64) ([]*entity.ProductBundle, error) {
	var out []*entity.ProductBundle
	for _, b := range r.c.bundles {
		if b.BundleProductID == bundleID {
			out = append(out, b)
		}
	}
	return out, nil
}

type inventoryRepo struct{ c *catalog }

func (r inventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	inv.ID = r.c.id()
	r.c.inventory = append(r.c.inventory, inv)
	return nil
}

func (r inventoryRepo) Get(_ context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	for _, inv := range r.c.inventory {
		if inv.ProductID == productID && inv.WarehouseID == warehouseID {
			return inv, nil
		}
	}
	return nil, nil
}

func (r inventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r inventoryRepo) EnsureRow(ctx context.Context, productID, warehouseID int64) (*entity.Inventory, error) {
	if inv, _ := r.Get(ctx, productID, warehouseID); inv != nil {
		return inv, nil
	}
	inv := &entity.Inventory{ProductID: productID, WarehouseID: warehouseID}
	if err := r.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (r inventoryRepo) UpdateQuantity(context.Context, *entity.Inventory) error { return nil }

func (r inventoryRepo) SetThreshold(context.Context, int64, int64, *int) error { return nil }

type txnRepo struct{ c *catalog }

func (r txnRepo) Create(_ context.Context, t *entity.InventoryTransaction) error {
	if r.c.failTxn {
		return errDB
	}
	t.ID = r.c.id()
	r.c.txns = append(r.c.txns, t)
	return nil
}

func (r txnRepo) List(context.Context, repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	return r.c.txns, nil
}
