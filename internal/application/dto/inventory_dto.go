package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	Type            string `json:"type"`
	ProductID       int64  `json:"product_id"`
	WarehouseID     int64  `json:"warehouse_id,omitempty"`
	FromWarehouseID int64  `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   int64  `json:"to_warehouse_id,omitempty"`
	Quantity        int    `json:"quantity"`
	ReferenceID     *int64 `json:"reference_id,omitempty"`
	Notes           string `json:"notes,omitempty"`
	OrderID         string `json:"order_id,omitempty"`
	CustomerID      *int64 `json:"customer_id,omitempty"`
}

// TransactionResponse fila del historial de inventario.
type TransactionResponse struct {
	ID             int64     `json:"id"`
	CorrelationID  string    `json:"correlation_id"`
	ProductID      int64     `json:"product_id"`
	WarehouseID    int64     `json:"warehouse_id"`
	Type           string    `json:"transaction_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	ReferenceID    *int64    `json:"reference_id"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      *int64    `json:"created_by"`
}

// MovementResponse respuesta 201 de un movimiento.
type MovementResponse struct {
	CorrelationID string                `json:"correlation_id"`
	SaleID        *int64                `json:"sale_id,omitempty"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// TransactionListResponse historial paginado.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// SetThresholdRequest body de PUT /api/inventory/threshold. Threshold null limpia el override.
type SetThresholdRequest struct {
	ProductID         int64 `json:"product_id"`
	WarehouseID       int64 `json:"warehouse_id"`
	LowStockThreshold *int  `json:"low_stock_threshold"`
}
