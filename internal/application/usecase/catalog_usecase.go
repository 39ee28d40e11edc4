package usecase

import (
	"context"
	"net/mail"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// CatalogUseCase datos de referencia del catálogo: tipos de producto, proveedores,
// ofertas proveedor-producto y componentes de bundles.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	typeRepo     repository.ProductTypeRepository
	supplierRepo repository.SupplierRepository
	offerRepo    repository.SupplierProductRepository
	bundleRepo   repository.BundleRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	typeRepo repository.ProductTypeRepository,
	supplierRepo repository.SupplierRepository,
	offerRepo repository.SupplierProductRepository,
	bundleRepo repository.BundleRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		typeRepo:     typeRepo,
		supplierRepo: supplierRepo,
		offerRepo:    offerRepo,
		bundleRepo:   bundleRepo,
	}
}

// ── Tipos de producto ────────────────────────────────────────────────────────

// CreateProductType crea un tipo. Sin umbral explícito usa el default del sistema.
func (uc *CatalogUseCase) CreateProductType(ctx context.Context, in dto.CreateProductTypeRequest) (*dto.ProductTypeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	threshold := inventory.DefaultLowStockThreshold
	if in.DefaultLowStockThreshold != nil {
		if *in.DefaultLowStockThreshold < 0 {
			return nil, domain.NewValidationError("default_low_stock_threshold", "debe ser mayor o igual a 0")
		}
		threshold = *in.DefaultLowStockThreshold
	}
	pt := &entity.ProductType{Name: name, DefaultLowStockThreshold: threshold, Description: strings.TrimSpace(in.Description)}
	if err := uc.typeRepo.Create(ctx, pt); err != nil {
		return nil, err
	}
	return toProductTypeResponse(pt), nil
}

// ListProductTypes lista todos los tipos.
func (uc *CatalogUseCase) ListProductTypes(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	list, err := uc.typeRepo.List(ctx)
	if err != nil {
		return nil, unavailable("list product types", err)
	}
	out := make([]dto.ProductTypeResponse, 0, len(list))
	for _, pt := range list {
		out = append(out, *toProductTypeResponse(pt))
	}
	return out, nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// CreateSupplier crea un proveedor; el email, si viene, debe ser válido.
func (uc *CatalogUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	email := trimOptional(in.ContactEmail)
	if email != nil {
		if _, err := mail.ParseAddress(*email); err != nil {
			return nil, domain.NewValidationError("contact_email", "formato inválido")
		}
	}
	s := &entity.Supplier{
		Name:         name,
		ContactEmail: email,
		ContactPhone: trimOptional(in.ContactPhone),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.supplierRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, unavailable("list suppliers", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// UpsertSupplierOffer registra o actualiza la oferta de un proveedor para un producto.
func (uc *CatalogUseCase) UpsertSupplierOffer(ctx context.Context, productID int64, in dto.SupplierOfferRequest) (*dto.SupplierOfferResponse, error) {
	if in.SupplierID <= 0 {
		return nil, domain.NewValidationError("supplier_id", "es obligatorio")
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return nil, domain.NewValidationError("cost_price", "debe ser mayor o igual a 0")
	}
	if in.LeadTimeDays != nil && *in.LeadTimeDays < 0 {
		return nil, domain.NewValidationError("lead_time_days", "debe ser mayor o igual a 0")
	}
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	s, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, unavailable("get supplier", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	sp := &entity.SupplierProduct{
		SupplierID:   in.SupplierID,
		ProductID:    productID,
		SupplierSKU:  strings.TrimSpace(in.SupplierSKU),
		CostPrice:    in.CostPrice,
		LeadTimeDays: in.LeadTimeDays,
		IsActive:     active,
	}
	if err := uc.offerRepo.Upsert(ctx, sp); err != nil {
		return nil, err
	}
	return toOfferResponse(sp), nil
}

// ListSupplierOffers lista las ofertas de un producto.
func (uc *CatalogUseCase) ListSupplierOffers(ctx context.Context, productID int64) ([]dto.SupplierOfferResponse, error) {
	if err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	list, err := uc.offerRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, unavailable("list supplier offers", err)
	}
	out := make([]dto.SupplierOfferResponse, 0, len(list))
	for _, sp := range list {
		out = append(out, *toOfferResponse(sp))
	}
	return out, nil
}

// ── Bundles ──────────────────────────────────────────────────────────────────

// AddComponent agrega un componente a un bundle. El producto debe estar marcado como bundle
// y no puede contenerse a sí mismo.
func (uc *CatalogUseCase) AddComponent(ctx context.Context, bundleID int64, in dto.AddComponentRequest) (*dto.BundleComponentResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "debe ser mayor que 0")
	}
	if in.ComponentProductID == bundleID {
		return nil, domain.NewValidationError("component_product_id", "un bundle no puede contenerse a sí mismo")
	}
	bundle, err := uc.productRepo.GetByID(ctx, bundleID)
	if err != nil {
		return nil, unavailable("get bundle", err)
	}
	if bundle == nil {
		return nil, domain.ErrNotFound
	}
	if !bundle.IsBundle {
		return nil, domain.NewValidationError("bundle_product_id", "el producto no está marcado como bundle")
	}
	if err := uc.requireProduct(ctx, in.ComponentProductID); err != nil {
		return nil, err
	}
	b := &entity.ProductBundle{BundleProductID: bundleID, ComponentProductID: in.ComponentProductID, Quantity: in.Quantity}
	if err := uc.bundleRepo.AddComponent(ctx, b); err != nil {
		return nil, err
	}
	return &dto.BundleComponentResponse{
		ID: b.ID, BundleProductID: b.BundleProductID, ComponentProductID: b.ComponentProductID, Quantity: b.Quantity,
	}, nil
}

// ListComponents lista los componentes de un bundle.
func (uc *CatalogUseCase) ListComponents(ctx context.Context, bundleID int64) ([]dto.BundleComponentResponse, error) {
	if err := uc.requireProduct(ctx, bundleID); err != nil {
		return nil, err
	}
	list, err := uc.bundleRepo.ListComponents(ctx, bundleID)
	if err != nil {
		return nil, unavailable("list bundle components", err)
	}
	out := make([]dto.BundleComponentResponse, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BundleComponentResponse{
			ID: b.ID, BundleProductID: b.BundleProductID, ComponentProductID: b.ComponentProductID, Quantity: b.Quantity,
		})
	}
	return out, nil
}

func (uc *CatalogUseCase) requireProduct(ctx context.Context, id int64) error {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return unavailable("get product", err)
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func toProductTypeResponse(pt *entity.ProductType) *dto.ProductTypeResponse {
	return &dto.ProductTypeResponse{
		ID: pt.ID, Name: pt.Name, DefaultLowStockThreshold: pt.DefaultLowStockThreshold, Description: pt.Description,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID: s.ID, Name: s.Name, ContactEmail: s.ContactEmail, ContactPhone: s.ContactPhone,
		Address: s.Address, CreatedAt: s.CreatedAt,
	}
}

func toOfferResponse(sp *entity.SupplierProduct) *dto.SupplierOfferResponse {
	return &dto.SupplierOfferResponse{
		ID: sp.ID, SupplierID: sp.SupplierID, ProductID: sp.ProductID, SupplierSKU: sp.SupplierSKU,
		CostPrice: sp.CostPrice, LeadTimeDays: sp.LeadTimeDays, IsActive: sp.IsActive,
	}
}
