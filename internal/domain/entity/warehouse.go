package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario. Nombre único por empresa.
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
