package dto

import "github.com/jhoicas/stockflow-api/internal/application/alerts"

// NoWarehousesMessage acompaña la lista vacía cuando la empresa no tiene bodegas.
const NoWarehousesMessage = "No hay bodegas registradas para esta empresa"

// SupplierContactDTO proveedor principal de un producto en alerta.
type SupplierContactDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

// LowStockAlertDTO una alerta por par (producto, bodega). Supplier y DaysUntilStockout
// se serializan como null cuando no aplican.
type LowStockAlertDTO struct {
	ProductID         int64               `json:"product_id"`
	SKU               string              `json:"sku"`
	ProductName       string              `json:"product_name"`
	WarehouseID       int64               `json:"warehouse_id"`
	WarehouseName     string              `json:"warehouse_name"`
	Quantity          int                 `json:"quantity"`
	Threshold         int                 `json:"threshold"`
	AverageDailySales float64             `json:"average_daily_sales"`
	DaysUntilStockout *float64            `json:"days_until_stockout"`
	Supplier          *SupplierContactDTO `json:"supplier"`
}

// LowStockAlertsResponse respuesta de GET /api/companies/:company_id/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
	Message     string             `json:"message,omitempty"`
}

// NewLowStockAlertsResponse proyecta el reporte del motor conservando su orden.
func NewLowStockAlertsResponse(report *alerts.Report) LowStockAlertsResponse {
	out := LowStockAlertsResponse{
		Alerts:      make([]LowStockAlertDTO, 0, len(report.Alerts)),
		TotalAlerts: len(report.Alerts),
	}
	if report.WarehouseCount == 0 {
		out.Message = NoWarehousesMessage
	}
	for _, a := range report.Alerts {
		item := LowStockAlertDTO{
			ProductID:         a.ProductID,
			SKU:               a.SKU,
			ProductName:       a.ProductName,
			WarehouseID:       a.WarehouseID,
			WarehouseName:     a.WarehouseName,
			Quantity:          a.Quantity,
			Threshold:         a.Threshold,
			AverageDailySales: a.AverageDailySales,
			DaysUntilStockout: a.DaysUntilStockout,
		}
		if a.Supplier != nil {
			item.Supplier = &SupplierContactDTO{ID: a.Supplier.ID, Name: a.Supplier.Name, ContactEmail: a.Supplier.ContactEmail}
		}
		out.Alerts = append(out.Alerts, item)
	}
	return out
}
