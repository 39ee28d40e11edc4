package entity

import "time"

// Sale evento de demanda; inmutable una vez creado. Alimenta la velocidad de ventas.
type Sale struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Quantity    int
	SaleDate    time.Time
	OrderID     string
	CustomerID  *int64
}
