package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Address      string  `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierOfferRequest body de POST /api/products/:id/suppliers.
type SupplierOfferRequest struct {
	SupplierID   int64            `json:"supplier_id"`
	SupplierSKU  string           `json:"supplier_sku"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	LeadTimeDays *int             `json:"lead_time_days"`
	IsActive     *bool            `json:"is_active"`
}

// SupplierOfferResponse oferta de un proveedor para un producto.
type SupplierOfferResponse struct {
	ID           int64            `json:"id"`
	SupplierID   int64            `json:"supplier_id"`
	ProductID    int64            `json:"product_id"`
	SupplierSKU  string           `json:"supplier_sku"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	LeadTimeDays *int             `json:"lead_time_days"`
	IsActive     bool             `json:"is_active"`
}
