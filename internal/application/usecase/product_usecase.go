package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	invapp "github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/logger"
	"github.com/jhoicas/stockflow-api/pkg/sku"
)

// ProductUseCase casos de uso de productos. El stock se crea junto con el producto y luego
// solo cambia vía movimientos.
type ProductUseCase struct {
	txRunner      invapp.TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	typeRepo      repository.ProductTypeRepository
	log           *logger.Logger
	newID         func() string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner invapp.TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	typeRepo repository.ProductTypeRepository,
	log *logger.Logger,
) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		typeRepo:      typeRepo,
		log:           log.Named("products"),
		newID:         uuid.NewString,
	}
}

// Create valida la entrada y escribe producto, inventario inicial y la transacción
// initial_stock en una sola transacción.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID int64, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case in.Name == "" && in.SKU == "" && in.Price == nil && in.WarehouseID == nil && in.InitialQuantity == nil:
		return nil, domain.NewValidationError("", "cuerpo vacío")
	case name == "":
		return nil, domain.NewValidationError("name", "es obligatorio")
	case in.Price == nil:
		return nil, domain.NewValidationError("price", "es obligatorio")
	case in.WarehouseID == nil:
		return nil, domain.NewValidationError("warehouse_id", "es obligatorio")
	case in.InitialQuantity == nil:
		return nil, domain.NewValidationError("initial_quantity", "es obligatorio")
	case in.Price.IsNegative():
		return nil, domain.NewValidationError("price", "debe ser mayor o igual a 0")
	case *in.InitialQuantity < 0:
		return nil, domain.NewValidationError("initial_quantity", "debe ser mayor o igual a 0")
	case in.LowStockThreshold != nil && *in.LowStockThreshold < 0:
		return nil, domain.NewValidationError("low_stock_threshold", "debe ser mayor o igual a 0")
	}
	code, err := sku.Normalize(in.SKU)
	if err != nil {
		return nil, domain.NewValidationError("sku", err.Error())
	}
	price := in.Price.Round(2)

	wh, err := uc.warehouseRepo.GetByID(ctx, *in.WarehouseID)
	if err != nil {
		return nil, unavailable("get warehouse", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, fmt.Errorf("bodega %d: %w", *in.WarehouseID, domain.ErrNotFound)
	}
	if in.SupplierID != nil {
		s, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return nil, unavailable("get supplier", err)
		}
		if s == nil {
			return nil, fmt.Errorf("proveedor %d: %w", *in.SupplierID, domain.ErrNotFound)
		}
	}
	if in.ProductTypeID != nil {
		pt, err := uc.typeRepo.GetByID(ctx, *in.ProductTypeID)
		if err != nil {
			return nil, unavailable("get product type", err)
		}
		if pt == nil {
			return nil, fmt.Errorf("tipo de producto %d: %w", *in.ProductTypeID, domain.ErrNotFound)
		}
	}
	existing, err := uc.productRepo.GetBySKU(ctx, code)
	if err != nil {
		return nil, unavailable("get product by sku", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("SKU %s: %w", code, domain.ErrDuplicate)
	}

	product := &entity.Product{
		SKU:           code,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		Price:         price,
		ProductTypeID: in.ProductTypeID,
		SupplierID:    in.SupplierID,
		IsBundle:      in.IsBundle,
	}
	qty := *in.InitialQuantity
	var createdBy *int64
	if userID > 0 {
		createdBy = &userID
	}

	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		txnRepo repository.InventoryTransactionRepository,
		_ repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		inv := &entity.Inventory{
			ProductID:         product.ID,
			WarehouseID:       wh.ID,
			Quantity:          qty,
			LowStockThreshold: in.LowStockThreshold,
		}
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		return txnRepo.Create(ctx, &entity.InventoryTransaction{
			CorrelationID:  uc.newID(),
			ProductID:      product.ID,
			WarehouseID:    wh.ID,
			Type:           entity.TransactionTypeInitialStock,
			QuantityChange: qty,
			QuantityBefore: 0,
			QuantityAfter:  qty,
			Notes:          "Stock inicial del producto " + code,
			CreatedBy:      createdBy,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("product_id", product.ID).Str("sku", code).Int64("warehouse_id", wh.ID).
		Int("initial_quantity", qty).Msg("producto creado")

	return &dto.CreateProductResponse{
		Message: "Producto creado exitosamente",
		Product: dto.CreatedProduct{
			ID:              product.ID,
			Name:            product.Name,
			SKU:             product.SKU,
			Price:           price.InexactFloat64(),
			WarehouseID:     wh.ID,
			InitialQuantity: qty,
			CreatedAt:       product.CreatedAt,
		},
	}, nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, unavailable("get product", err)
	}
	if p == nil {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// ListByCompany lista los productos con stock en bodegas de la empresa.
func (uc *ProductUseCase) ListByCompany(ctx context.Context, companyID int64, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ProductTypeID: p.ProductTypeID,
		SupplierID:    p.SupplierID,
		IsBundle:      p.IsBundle,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// unavailable envuelve una falla del almacén para que el handler responda 5xx.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
}
