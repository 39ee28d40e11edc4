package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body de POST /api/products. Punteros distinguen "ausente" de cero
// para reportar campos obligatorios.
type CreateProductRequest struct {
	Name              string           `json:"name"`
	SKU               string           `json:"sku"`
	Price             *decimal.Decimal `json:"price"`
	WarehouseID       *int64           `json:"warehouse_id"`
	InitialQuantity   *int             `json:"initial_quantity"`
	Description       string           `json:"description"`
	SupplierID        *int64           `json:"supplier_id,omitempty"`
	ProductTypeID     *int64           `json:"product_type_id,omitempty"`
	IsBundle          bool             `json:"is_bundle"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
}

// CreatedProduct producto recién creado con su stock inicial.
type CreatedProduct struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	Price           float64   `json:"price"`
	WarehouseID     int64     `json:"warehouse_id"`
	InitialQuantity int       `json:"initial_quantity"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateProductResponse respuesta 201 de creación.
type CreateProductResponse struct {
	Message string         `json:"message"`
	Product CreatedProduct `json:"product"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	ProductTypeID *int64          `json:"product_type_id"`
	SupplierID    *int64          `json:"supplier_id"`
	IsBundle      bool            `json:"is_bundle"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateProductTypeRequest entrada para crear un tipo de producto.
type CreateProductTypeRequest struct {
	Name                     string `json:"name"`
	DefaultLowStockThreshold *int   `json:"default_low_stock_threshold"`
	Description              string `json:"description"`
}

// ProductTypeResponse salida de un tipo de producto.
type ProductTypeResponse struct {
	ID                       int64  `json:"id"`
	Name                     string `json:"name"`
	DefaultLowStockThreshold int    `json:"default_low_stock_threshold"`
	Description              string `json:"description"`
}

// AddComponentRequest body de POST /api/products/:id/components.
type AddComponentRequest struct {
	ComponentProductID int64 `json:"component_product_id"`
	Quantity           int   `json:"quantity"`
}

// BundleComponentResponse componente de un bundle.
type BundleComponentResponse struct {
	ID                 int64 `json:"id"`
	BundleProductID    int64 `json:"bundle_product_id"`
	ComponentProductID int64 `json:"component_product_id"`
	Quantity           int   `json:"quantity"`
}
