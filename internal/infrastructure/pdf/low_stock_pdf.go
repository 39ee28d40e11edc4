// Package pdf genera la hoja de reposición de bajo stock en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Ventana + Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Bodega | Stock | Umbral | Días | Prov│
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de alertas                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockflow-api/internal/application/alerts"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// LowStockPDFGenerator dibuja un alerts.Report con Maroto v2.
type LowStockPDFGenerator struct{}

// NewLowStockPDFGenerator construye el generador.
func NewLowStockPDFGenerator() *LowStockPDFGenerator { return &LowStockPDFGenerator{} }

// GenerateLowStockPDF genera el PDF y devuelve sus bytes. Respeta el orden de report.Alerts.
func (g *LowStockPDFGenerator) GenerateLowStockPDF(ctx context.Context, report *alerts.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reposición de bajo stock", true).
		WithAuthor(report.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(report.Alerts) == 0 {
		m.AddRows(emptyRow(report))
	} else {
		m.AddRows(tableHeaderRow())
		m.AddRows(tableRows(report.Alerts)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report *alerts.Report) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Empresa #"+strconv.FormatInt(report.CompanyID, 10), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Ventana de ventas: %d días", report.WindowDays), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func emptyRow(report *alerts.Report) core.Row {
	msg := "Sin productos en o bajo su umbral."
	if report.WarehouseCount == 0 {
		msg = "No hay bodegas registradas para esta empresa."
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 10, Align: align.Center, Top: 3, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Bodega", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Umbral", 1, align.Right),
		h("Días", 1, align.Right),
		h("Proveedor", 2, align.Left),
	)
}

func tableRows(list []inventory.Alert) []core.Row {
	result := make([]core.Row, 0, len(list))
	for i, a := range list {
		cell := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		right := cell
		right.Align = align.Right
		qty := right
		if a.Quantity == 0 {
			qty.Color = colorDanger
			qty.Style = fontstyle.Bold
		}

		r := row.New(7).Add(
			col.New(2).Add(text.New(a.SKU, cell)),
			col.New(3).Add(text.New(a.ProductName, cell)),
			col.New(2).Add(text.New(a.WarehouseName, cell)),
			col.New(1).Add(text.New(strconv.Itoa(a.Quantity), qty)),
			col.New(1).Add(text.New(strconv.Itoa(a.Threshold), right)),
			col.New(1).Add(text.New(formatDays(a.DaysUntilStockout), right)),
			col.New(2).Add(text.New(supplierLabel(a.Supplier), cell)),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow(report *alerts.Report) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total de alertas: %d", len(report.Alerts)), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatDays redondea a un decimal para mostrar; "sin ventas" cuando no hubo ventas.
func formatDays(d *float64) string {
	if d == nil {
		return "sin ventas"
	}
	return strconv.FormatFloat(*d, 'f', 1, 64)
}

func supplierLabel(s *inventory.SupplierContact) string {
	if s == nil {
		return "sin proveedor"
	}
	if s.ContactEmail != nil && *s.ContactEmail != "" {
		return s.Name + " <" + *s.ContactEmail + ">"
	}
	return s.Name
}
