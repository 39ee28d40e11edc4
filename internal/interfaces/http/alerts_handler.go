package http

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/alerts"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
)

// LowStockService lo implementa *alerts.LowStockUseCase.
type LowStockService interface {
	GetLowStockAlerts(ctx context.Context, companyID int64, opts alerts.Options) (*alerts.Report, error)
}

// LowStockRenderer lo implementa *pdf.LowStockPDFGenerator.
type LowStockRenderer interface {
	GenerateLowStockPDF(ctx context.Context, report *alerts.Report) ([]byte, error)
}

// AlertsHandler expone el motor de alertas de bajo stock.
type AlertsHandler struct {
	svc      LowStockService
	renderer LowStockRenderer
}

// NewAlertsHandler construye el handler. renderer puede ser nil si no se sirve PDF.
func NewAlertsHandler(svc LowStockService, renderer LowStockRenderer) *AlertsHandler {
	return &AlertsHandler{svc: svc, renderer: renderer}
}

// LowStock godoc
// @Summary      Alertas de bajo stock
// @Description  Una alerta por par (producto, bodega) con cantidad en o bajo su umbral efectivo,
//
//	ordenadas por días hasta agotarse (sin ventas al final).
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        company_id   path   int   true   "ID de la empresa"
// @Param        days         query  int   false  "Ventana de ventas en días"  default(30)
// @Param        active_only  query  bool  false  "Solo productos con ventas en la ventana"  default(false)
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock [get]
func (h *AlertsHandler) LowStock(c *fiber.Ctx) error {
	report, err := h.report(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewLowStockAlertsResponse(report))
}

// LowStockPDF godoc
// @Summary      Hoja de reposición en PDF
// @Tags         alerts
// @Security     Bearer
// @Produce      application/pdf
// @Param        company_id   path   int   true   "ID de la empresa"
// @Param        days         query  int   false  "Ventana de ventas en días"  default(30)
// @Param        active_only  query  bool  false  "Solo productos con ventas en la ventana"  default(false)
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock.pdf [get]
func (h *AlertsHandler) LowStockPDF(c *fiber.Ctx) error {
	if h.renderer == nil {
		return fiber.ErrNotFound
	}
	report, err := h.report(c)
	if err != nil {
		return err
	}
	doc, err := h.renderer.GenerateLowStockPDF(c.UserContext(), report)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("bajo-stock-%d-%s.pdf", report.CompanyID, report.GeneratedAt.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

func (h *AlertsHandler) report(c *fiber.Ctx) (*alerts.Report, error) {
	companyID, err := paramID(c, "company_id")
	if err != nil {
		return nil, err
	}
	var opts alerts.Options
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return nil, badRequest("VALIDATION", "days debe ser un entero positivo")
		}
		opts.WindowDays = days
	}
	if raw := c.Query("active_only"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, badRequest("VALIDATION", "active_only debe ser true o false")
		}
		opts.ActiveOnly = active
	}
	return h.svc.GetLowStockAlerts(c.UserContext(), companyID, opts)
}
