package alerts_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/alerts"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// ────────────────────────────────────────────────────────────────────────────
// Fakes
// ────────────────────────────────────────────────────────────────────────────

type fakeCompanies struct {
	companies map[int64]*entity.Company
	err       error
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanies) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companies[id], nil
}
func (f *fakeCompanies) List(_ context.Context, _, _ int) ([]*entity.Company, error) { return nil, nil }

type fakeWarehouses struct {
	ids map[int64][]int64
	err error
}

func (f *fakeWarehouses) Create(_ context.Context, _ *entity.Warehouse) error { return nil }
func (f *fakeWarehouses) GetByID(_ context.Context, _ int64) (*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) ListByCompany(_ context.Context, _ int64, _, _ int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouses) ListIDsByCompany(_ context.Context, companyID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids[companyID], nil
}

type fakeLowStock struct {
	mu    sync.Mutex
	rows  []repository.LowStockCandidate
	err   error
	calls []repository.LowStockQuery
}

func (f *fakeLowStock) ListCandidates(_ context.Context, q repository.LowStockQuery) ([]repository.LowStockCandidate, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.LowStockCandidate, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int       { return &n }
func i64Ptr(n int64) *int64   { return &n }
func strPtr(s string) *string { return &s }

func alertsConfig() config.AlertsConfig {
	return config.AlertsConfig{WindowDays: 30, MaxWindowDays: 365, DefaultThreshold: 10}
}

func newUseCase(rows []repository.LowStockCandidate) (*alerts.LowStockUseCase, *fakeLowStock) {
	ls := &fakeLowStock{rows: rows}
	uc := alerts.NewLowStockUseCase(
		&fakeCompanies{companies: map[int64]*entity.Company{1: {ID: 1, Name: "Acme"}}},
		&fakeWarehouses{ids: map[int64][]int64{1: {10, 20}}},
		ls,
		alertsConfig(),
		logger.Nop(),
	).WithClock(func() time.Time { return fixedNow })
	return uc, ls
}

// ────────────────────────────────────────────────────────────────────────────
// Escenarios
// ────────────────────────────────────────────────────────────────────────────

func TestGetLowStockAlerts_DosBodegasSoloUnaBaja(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 100, SKU: "SKU-1", ProductName: "Widget", WarehouseID: 10, WarehouseName: "Norte", Quantity: 4, TypeDefault: intPtr(10), UnitsSold: 10},
		{ProductID: 100, SKU: "SKU-1", ProductName: "Widget", WarehouseID: 20, WarehouseName: "Sur", Quantity: 50, TypeDefault: intPtr(10), UnitsSold: 10},
	})

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 1)

	a := rep.Alerts[0]
	assert.Equal(t, int64(10), a.WarehouseID)
	assert.Equal(t, 4, a.Quantity)
	assert.Equal(t, 10, a.Threshold)
	assert.InDelta(t, 10.0/30.0, a.AverageDailySales, 1e-9)
	require.NotNil(t, a.DaysUntilStockout)
	assert.InDelta(t, 12.0, *a.DaysUntilStockout, 1e-9)
	assert.Nil(t, a.Supplier, "sin proveedor la proyección es nil")
	assert.Equal(t, 30, rep.WindowDays)
	assert.Empty(t, rep.Warnings)
}

func TestGetLowStockAlerts_OverrideGanaSobreTipo(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 6, ThresholdOverride: intPtr(5), TypeDefault: intPtr(20)},
		{ProductID: 2, SKU: "B", ProductName: "B", WarehouseID: 10, Quantity: 15, TypeDefault: intPtr(20)},
		{ProductID: 3, SKU: "C", ProductName: "C", WarehouseID: 10, Quantity: 10},
	})

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 2, "6 > override 5 no alerta")
	assert.Equal(t, "B", rep.Alerts[0].SKU)
	assert.Equal(t, 20, rep.Alerts[0].Threshold)
	assert.Equal(t, "C", rep.Alerts[1].SKU)
	assert.Equal(t, 10, rep.Alerts[1].Threshold, "default del sistema, inclusivo")
}

func TestGetLowStockAlerts_ProveedorProyectado(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 2,
			SupplierID: i64Ptr(7), SupplierName: strPtr("Proveedor Uno"), SupplierEmail: strPtr("ventas@uno.co")},
	})

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 1)
	require.NotNil(t, rep.Alerts[0].Supplier)
	assert.Equal(t, int64(7), rep.Alerts[0].Supplier.ID)
	assert.Equal(t, "Proveedor Uno", rep.Alerts[0].Supplier.Name)
	assert.Equal(t, "ventas@uno.co", *rep.Alerts[0].Supplier.ContactEmail)
}

func TestGetLowStockAlerts_OrdenPorUrgencia(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 5},                 // sin ventas
		{ProductID: 2, SKU: "B", ProductName: "B", WarehouseID: 10, Quantity: 9, UnitsSold: 90},  // 3.0
		{ProductID: 3, SKU: "C", ProductName: "C", WarehouseID: 10, Quantity: 3, UnitsSold: 60},  // 1.5
		{ProductID: 4, SKU: "D", ProductName: "D", WarehouseID: 20, Quantity: 1},                 // sin ventas
	})

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 4)
	assert.Equal(t, "C", rep.Alerts[0].SKU)
	assert.Equal(t, "B", rep.Alerts[1].SKU)
	assert.Nil(t, rep.Alerts[2].DaysUntilStockout)
	assert.Nil(t, rep.Alerts[3].DaysUntilStockout)
	assert.Equal(t, "A", rep.Alerts[2].SKU)
	assert.Equal(t, "D", rep.Alerts[3].SKU)
}

func TestGetLowStockAlerts_ActiveOnlyDescartaSinVentas(t *testing.T) {
	rows := []repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 5},
		{ProductID: 2, SKU: "B", ProductName: "B", WarehouseID: 10, Quantity: 0, UnitsSold: 30},
	}
	uc, _ := newUseCase(rows)

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 1)
	assert.Equal(t, "B", rep.Alerts[0].SKU)
	require.NotNil(t, rep.Alerts[0].DaysUntilStockout)
	assert.Equal(t, 0.0, *rep.Alerts[0].DaysUntilStockout, "stock 0 con ventas sigue alertando")
}

func TestGetLowStockAlerts_VentanaPersonalizada(t *testing.T) {
	uc, ls := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 50, ThresholdOverride: intPtr(60), UnitsSold: 35},
	})

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{WindowDays: 7})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 1)
	assert.InDelta(t, 5.0, rep.Alerts[0].AverageDailySales, 1e-9)
	assert.InDelta(t, 10.0, *rep.Alerts[0].DaysUntilStockout, 1e-9)

	require.Len(t, ls.calls, 1)
	q := ls.calls[0]
	assert.Equal(t, []int64{10, 20}, q.WarehouseIDs)
	assert.Equal(t, fixedNow, q.To)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), q.From)
	assert.Equal(t, 10, q.SystemDefault)
}

func TestGetLowStockAlerts_VentanaInvalida(t *testing.T) {
	uc, ls := newUseCase(nil)

	for _, days := range []int{-1, 366} {
		_, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{WindowDays: days})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "days", ve.Field)
	}
	assert.Empty(t, ls.calls)
}

func TestGetLowStockAlerts_FilasMalformadasSeExcluyen(t *testing.T) {
	var buf bytes.Buffer
	ls := &fakeLowStock{rows: []repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: -3},
		{ProductID: 2, SKU: "  ", ProductName: "B", WarehouseID: 10, Quantity: 1},
		{ProductID: 3, SKU: "C", ProductName: "C", WarehouseID: 10, Quantity: 1, SupplierID: i64Ptr(9)},
		{ProductID: 4, SKU: "D", ProductName: "D", WarehouseID: 10, Quantity: 1},
	}}
	uc := alerts.NewLowStockUseCase(
		&fakeCompanies{companies: map[int64]*entity.Company{1: {ID: 1}}},
		&fakeWarehouses{ids: map[int64][]int64{1: {10}}},
		ls,
		alertsConfig(),
		logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf}),
	)

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	require.Len(t, rep.Alerts, 1)
	assert.Equal(t, "D", rep.Alerts[0].SKU)

	require.Len(t, rep.Warnings, 3)
	assert.Equal(t, int64(1), rep.Warnings[0].ProductID)
	assert.Equal(t, "cantidad negativa", rep.Warnings[0].Reason)
	assert.Equal(t, "producto sin SKU", rep.Warnings[1].Reason)
	assert.Equal(t, "proveedor sin nombre", rep.Warnings[2].Reason)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"reason":"cantidad negativa"`)
}

func TestGetLowStockAlerts_EmpresaInexistente(t *testing.T) {
	uc, ls := newUseCase(nil)

	_, err := uc.GetLowStockAlerts(context.Background(), 999, alerts.Options{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnavailable)
	assert.Empty(t, ls.calls)
}

func TestGetLowStockAlerts_SinBodegasListaVacia(t *testing.T) {
	ls := &fakeLowStock{}
	uc := alerts.NewLowStockUseCase(
		&fakeCompanies{companies: map[int64]*entity.Company{1: {ID: 1}}},
		&fakeWarehouses{ids: map[int64][]int64{}},
		ls,
		alertsConfig(),
		logger.Nop(),
	)

	rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	assert.NotNil(t, rep.Alerts)
	assert.Empty(t, rep.Alerts)
	assert.Empty(t, ls.calls, "sin bodegas no se consulta inventario")
}

func TestGetLowStockAlerts_FallaDelAlmacen(t *testing.T) {
	boom := errors.New("conexión rechazada")

	cases := map[string]*alerts.LowStockUseCase{
		"empresa": alerts.NewLowStockUseCase(
			&fakeCompanies{err: boom}, &fakeWarehouses{}, &fakeLowStock{}, alertsConfig(), nil),
		"bodegas": alerts.NewLowStockUseCase(
			&fakeCompanies{companies: map[int64]*entity.Company{1: {ID: 1}}},
			&fakeWarehouses{err: boom}, &fakeLowStock{}, alertsConfig(), nil),
		"candidatos": alerts.NewLowStockUseCase(
			&fakeCompanies{companies: map[int64]*entity.Company{1: {ID: 1}}},
			&fakeWarehouses{ids: map[int64][]int64{1: {10}}},
			&fakeLowStock{err: boom}, alertsConfig(), nil),
	}
	for name, uc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnavailable)
			assert.ErrorIs(t, err, boom)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestGetLowStockAlerts_Idempotente(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 3, UnitsSold: 12},
		{ProductID: 2, SKU: "B", ProductName: "B", WarehouseID: 20, Quantity: 1},
	})

	first, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	second, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetLowStockAlerts_LlamadasConcurrentes(t *testing.T) {
	uc, _ := newUseCase([]repository.LowStockCandidate{
		{ProductID: 1, SKU: "A", ProductName: "A", WarehouseID: 10, Quantity: 3, UnitsSold: 12},
	})

	var wg sync.WaitGroup
	results := make([]*alerts.Report, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rep, err := uc.GetLowStockAlerts(context.Background(), 1, alerts.Options{})
			if err == nil {
				results[i] = rep
			}
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, results[0], r)
	}
}
