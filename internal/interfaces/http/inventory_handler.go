package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	uc        *inventory.RegisterMovementUseCase
	history   *inventory.HistoryUseCase
	threshold *inventory.ThresholdUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, history *inventory.HistoryUseCase, threshold *inventory.ThresholdUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, history: history, threshold: threshold}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, product_id, warehouse_id (o from/to para transfer), quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	res, err := h.uc.RegisterMovement(c.UserContext(), inventory.MovementInput{
		CompanyID:       GetCompanyID(c),
		UserID:          GetUserID(c),
		Role:            GetRole(c),
		Type:            in.Type,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
		ReferenceID:     in.ReferenceID,
		Notes:           in.Notes,
		OrderID:         in.OrderID,
		CustomerID:      in.CustomerID,
	})
	if err != nil {
		return err
	}
	out := dto.MovementResponse{CorrelationID: res.CorrelationID, Transactions: toTransactionResponses(res.Transactions)}
	if res.Sale != nil {
		out.SaleID = &res.Sale.ID
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Historial de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  int  false  "Filtrar por producto"
// @Param        warehouse_id  query  int  false  "Filtrar por bodega"
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	productID, err := queryID(c, "product_id")
	if err != nil {
		return err
	}
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return err
	}
	page := pageFromQuery(c)
	list, err := h.history.List(c.UserContext(), repository.TransactionFilter{
		CompanyID:   GetCompanyID(c),
		ProductID:   productID,
		WarehouseID: warehouseID,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.TransactionListResponse{
		Items: toTransactionResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// SetThreshold godoc
// @Summary      Fijar o limpiar el umbral de bajo stock de una fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetThresholdRequest  true  "low_stock_threshold null limpia el override"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/threshold [put]
func (h *InventoryHandler) SetThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if err := h.threshold.SetThreshold(c.UserContext(), GetCompanyID(c), in.ProductID, in.WarehouseID, in.LowStockThreshold); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "umbral actualizado"})
}

func toTransactionResponses(list []*entity.InventoryTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransactionResponse{
			ID:             t.ID,
			CorrelationID:  t.CorrelationID,
			ProductID:      t.ProductID,
			WarehouseID:    t.WarehouseID,
			Type:           t.Type,
			QuantityChange: t.QuantityChange,
			QuantityBefore: t.QuantityBefore,
			QuantityAfter:  t.QuantityAfter,
			ReferenceID:    t.ReferenceID,
			Notes:          t.Notes,
			CreatedAt:      t.CreatedAt,
			CreatedBy:      t.CreatedBy,
		})
	}
	return out
}
