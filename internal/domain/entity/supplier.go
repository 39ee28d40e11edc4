package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de productos.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail *string
	ContactPhone *string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierProduct oferta de un proveedor para un producto (costo y tiempo de entrega).
type SupplierProduct struct {
	ID           int64
	SupplierID   int64
	ProductID    int64
	SupplierSKU  string
	CostPrice    *decimal.Decimal
	LeadTimeDays *int
	IsActive     bool
	CreatedAt    time.Time
}
