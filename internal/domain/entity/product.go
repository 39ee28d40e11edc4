package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El SKU es único a nivel global, no por empresa.
// El stock se maneja por bodega en Inventory.
type Product struct {
	ID            int64
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, >= 0
	ProductTypeID *int64
	SupplierID    *int64 // proveedor principal
	IsBundle      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductType agrupa productos y aporta el umbral de bajo stock por defecto.
type ProductType struct {
	ID                       int64
	Name                     string
	DefaultLowStockThreshold int
	Description              string
}

// ProductBundle relaciona un producto compuesto con uno de sus componentes.
type ProductBundle struct {
	ID                 int64
	BundleProductID    int64
	ComponentProductID int64
	Quantity           int
}
