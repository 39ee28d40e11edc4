package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down|status]",
		Short: "Aplica o revierte las migraciones embebidas",
		Long: `Aplica o revierte las migraciones SQL compiladas en el binario.

  stockflowctl migrate up       # aplica todas las pendientes
  stockflowctl migrate down     # revierte la última aplicada
  stockflowctl migrate status   # versión actual y pendientes`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: withMigrator(func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error {
			applied, err := m.Up(ctx)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aplicadas: %v\n", applied)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revierte la última migración aplicada",
		RunE: withMigrator(func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error {
			version, err := m.Down(ctx)
			if err != nil {
				return err
			}
			if version == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no hay migraciones aplicadas")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revertida: %d\n", version)
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Muestra la versión actual y las pendientes",
		RunE: withMigrator(func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error {
			st, err := m.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "versión actual: %d\ntotal: %d\npendientes: %v\n",
				st.CurrentVersion, st.TotalMigrations, st.PendingMigrations)
			return nil
		}),
	})
	return cmd
}

// withMigrator abre la conexión de migraciones con la configuración del entorno y la cierra al terminar.
func withMigrator(fn func(ctx context.Context, cmd *cobra.Command, m *postgres.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
		if err != nil {
			return err
		}
		defer m.Close()
		return fn(ctx, cmd, m)
	}
}
