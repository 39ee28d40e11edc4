package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// Options parámetros por llamada. WindowDays 0 usa la ventana configurada.
type Options struct {
	WindowDays int
	ActiveOnly bool
}

// PartialDataWarning fila excluida por datos inconsistentes. Nunca hace fallar la consulta.
type PartialDataWarning struct {
	ProductID   int64
	WarehouseID int64
	Reason      string
}

// Report resultado del motor de alertas para una empresa.
type Report struct {
	CompanyID      int64
	CompanyName    string
	WindowDays     int
	GeneratedAt    time.Time
	WarehouseCount int
	Alerts         []inventory.Alert
	Warnings       []PartialDataWarning
}

// LowStockUseCase detecta productos en o bajo su umbral en todas las bodegas de una empresa.
// Es de solo lectura y no guarda estado entre llamadas.
type LowStockUseCase struct {
	companyRepo   repository.CompanyRepository
	warehouseRepo repository.WarehouseRepository
	lowStockRepo  repository.LowStockRepository
	cfg           config.AlertsConfig
	log           *logger.Logger
	now           func() time.Time
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(
	companyRepo repository.CompanyRepository,
	warehouseRepo repository.WarehouseRepository,
	lowStockRepo repository.LowStockRepository,
	cfg config.AlertsConfig,
	log *logger.Logger,
) *LowStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LowStockUseCase{
		companyRepo:   companyRepo,
		warehouseRepo: warehouseRepo,
		lowStockRepo:  lowStockRepo,
		cfg:           cfg,
		log:           log.Named("alerts"),
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests y reportes con fecha de corte fija).
func (uc *LowStockUseCase) WithClock(now func() time.Time) *LowStockUseCase {
	cp := *uc
	cp.now = now
	return &cp
}

// GetLowStockAlerts devuelve las alertas de la empresa ordenadas por urgencia.
//
// Errores: domain.ErrNotFound si la empresa no existe, *domain.ValidationError si la
// ventana está fuera de rango, domain.ErrUnavailable si falla el almacén de datos.
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID int64, opts Options) (*Report, error) {
	window := opts.WindowDays
	if window == 0 {
		window = uc.cfg.WindowDays
	}
	if window <= 0 {
		return nil, domain.NewValidationError("days", "debe ser un entero positivo")
	}
	if uc.cfg.MaxWindowDays > 0 && window > uc.cfg.MaxWindowDays {
		return nil, domain.NewValidationError("days", fmt.Sprintf("no puede superar %d", uc.cfg.MaxWindowDays))
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, unavailable("get company", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	report := &Report{
		CompanyID:   companyID,
		CompanyName: company.Name,
		WindowDays:  window,
		GeneratedAt: now,
		Alerts:      []inventory.Alert{},
	}

	warehouseIDs, err := uc.warehouseRepo.ListIDsByCompany(ctx, companyID)
	if err != nil {
		return nil, unavailable("list warehouses", err)
	}
	report.WarehouseCount = len(warehouseIDs)
	if len(warehouseIDs) == 0 {
		return report, nil
	}

	rows, err := uc.lowStockRepo.ListCandidates(ctx, repository.LowStockQuery{
		WarehouseIDs:  warehouseIDs,
		From:          now.AddDate(0, 0, -window),
		To:            now,
		SystemDefault: uc.cfg.DefaultThreshold,
	})
	if err != nil {
		return nil, unavailable("list low stock candidates", err)
	}

	for _, row := range rows {
		if reason := malformedReason(row); reason != "" {
			uc.log.Warn().
				Int64("company_id", companyID).
				Int64("product_id", row.ProductID).
				Int64("warehouse_id", row.WarehouseID).
				Str("reason", reason).
				Msg("fila de inventario excluida de alertas")
			report.Warnings = append(report.Warnings, PartialDataWarning{
				ProductID:   row.ProductID,
				WarehouseID: row.WarehouseID,
				Reason:      reason,
			})
			continue
		}
		alert, ok := fold(row, window, uc.cfg.DefaultThreshold, opts.ActiveOnly)
		if ok {
			report.Alerts = append(report.Alerts, alert)
		}
	}
	inventory.SortAlerts(report.Alerts)

	uc.log.Debug().
		Int64("company_id", companyID).
		Int("window_days", window).
		Int("candidates", len(rows)).
		Int("alerts", len(report.Alerts)).
		Int("warnings", len(report.Warnings)).
		Msg("alertas de bajo stock calculadas")
	return report, nil
}

// fold aplica umbral, velocidad y filtro de actividad a una fila válida.
func fold(row repository.LowStockCandidate, window, systemDefault int, activeOnly bool) (inventory.Alert, bool) {
	threshold := inventory.ResolveThreshold(row.ThresholdOverride, row.TypeDefault, systemDefault)
	if !inventory.IsLowStock(row.Quantity, threshold) {
		return inventory.Alert{}, false
	}
	avg := inventory.AverageDailySalesFromTotal(row.UnitsSold, window)
	if activeOnly && avg == 0 {
		return inventory.Alert{}, false
	}
	alert := inventory.Alert{
		ProductID:         row.ProductID,
		SKU:               row.SKU,
		ProductName:       row.ProductName,
		WarehouseID:       row.WarehouseID,
		WarehouseName:     row.WarehouseName,
		Quantity:          row.Quantity,
		Threshold:         threshold,
		AverageDailySales: avg,
		DaysUntilStockout: inventory.DaysUntilStockout(row.Quantity, avg),
	}
	if row.SupplierID != nil {
		alert.Supplier = &inventory.SupplierContact{
			ID:           *row.SupplierID,
			Name:         *row.SupplierName,
			ContactEmail: row.SupplierEmail,
		}
	}
	return alert, true
}

func malformedReason(row repository.LowStockCandidate) string {
	switch {
	case row.Quantity < 0:
		return "cantidad negativa"
	case strings.TrimSpace(row.SKU) == "":
		return "producto sin SKU"
	case strings.TrimSpace(row.ProductName) == "":
		return "producto sin nombre"
	case row.UnitsSold < 0:
		return "total de ventas negativo"
	case row.SupplierID != nil && (row.SupplierName == nil || strings.TrimSpace(*row.SupplierName) == ""):
		return "proveedor sin nombre"
	}
	return ""
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
}
