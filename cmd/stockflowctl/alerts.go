package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/application/alerts"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

const (
	companyIDFlag  = "company-id"
	daysFlag       = "days"
	activeOnlyFlag = "active-only"
	formatFlag     = "format"
	outputFlag     = "output"
)

func alertsFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		companyIDFlag: &cobraflags.StringFlag{
			Name:  companyIDFlag,
			Value: "",
			Usage: "ID de la empresa (obligatorio)",
		},
		daysFlag: &cobraflags.StringFlag{
			Name:  daysFlag,
			Value: "",
			Usage: "Ventana de ventas en días; vacío usa ALERTS_WINDOW_DAYS",
		},
		activeOnlyFlag: &cobraflags.StringFlag{
			Name:  activeOnlyFlag,
			Value: "false",
			Usage: "Solo productos con ventas en la ventana (true|false)",
		},
		formatFlag: &cobraflags.StringFlag{
			Name:  formatFlag,
			Value: "json",
			Usage: "Formato de salida: json o pdf",
		},
		outputFlag: &cobraflags.StringFlag{
			Name:  outputFlag,
			Value: "",
			Usage: "Archivo de salida; vacío escribe en stdout",
		},
	}
}

// alertsRequest parámetros ya validados del comando alerts.
type alertsRequest struct {
	companyID int64
	opts      alerts.Options
	format    string
	output    string
}

func parseAlertsFlags(flags map[string]cobraflags.Flag) (alertsRequest, error) {
	var req alertsRequest
	id, err := strconv.ParseInt(flags[companyIDFlag].GetString(), 10, 64)
	if err != nil || id <= 0 {
		return req, fmt.Errorf("--%s debe ser un entero positivo", companyIDFlag)
	}
	req.companyID = id
	if raw := flags[daysFlag].GetString(); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return req, fmt.Errorf("--%s debe ser un entero positivo", daysFlag)
		}
		req.opts.WindowDays = days
	}
	active, err := strconv.ParseBool(flags[activeOnlyFlag].GetString())
	if err != nil {
		return req, fmt.Errorf("--%s debe ser true o false", activeOnlyFlag)
	}
	req.opts.ActiveOnly = active
	req.format = flags[formatFlag].GetString()
	if req.format != "json" && req.format != "pdf" {
		return req, fmt.Errorf("--%s debe ser json o pdf", formatFlag)
	}
	req.output = flags[outputFlag].GetString()
	return req, nil
}

func newAlertsCommand() *cobra.Command {
	flags := alertsFlags()
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Calcula las alertas de bajo stock de una empresa",
		Long: `Ejecuta el motor de alertas contra la base configurada y escribe el resultado.

  stockflowctl alerts --company-id 1
  stockflowctl alerts --company-id 1 --days 14 --format pdf --output reposicion.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := parseAlertsFlags(flags)
			if err != nil {
				return err
			}
			return runAlerts(cmd, req)
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func runAlerts(cmd *cobra.Command, req alertsRequest) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	uc := alerts.NewLowStockUseCase(
		postgres.NewCompanyRepository(pool),
		postgres.NewWarehouseRepository(pool),
		postgres.NewLowStockRepository(pool),
		cfg.Alerts,
		log,
	)
	report, err := uc.GetLowStockAlerts(ctx, req.companyID, req.opts)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), req.output, func(w io.Writer) error {
		return writeReport(ctx, w, req.format, report)
	})
}

func writeReport(ctx context.Context, w io.Writer, format string, report *alerts.Report) error {
	if format == "pdf" {
		doc, err := pdf.NewLowStockPDFGenerator().GenerateLowStockPDF(ctx, report)
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewLowStockAlertsResponse(report))
}
