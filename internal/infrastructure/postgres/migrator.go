package postgres

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/stokaro/ptah/dbschema"
	"github.com/stokaro/ptah/migration/migrator"

	"github.com/jhoicas/stockflow-api/pkg/logger"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationsFS devuelve las migraciones embebidas (NNNNNNNNNN_descripcion.up.sql / .down.sql) en la raíz del FS.
func MigrationsFS() (fs.FS, error) {
	return fs.Sub(embeddedMigrations, "migrations")
}

// Migrator aplica las migraciones embebidas con el runner de ptah sobre su propia conexión.
type Migrator struct {
	conn   *dbschema.DatabaseConnection
	runner *migrator.Migrator
	log    *logger.Logger
}

// NewMigrator abre la conexión a dsn y carga las migraciones. Cerrar con Close.
func NewMigrator(dsn string, log *logger.Logger) (*Migrator, error) {
	fsys, err := MigrationsFS()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	conn, err := dbschema.ConnectToDatabase(dsn)
	if err != nil {
		return nil, fmt.Errorf("conexión de migraciones: %w", err)
	}
	runner, err := migrator.NewFSMigrator(conn, fsys)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("cargar migraciones: %w", err)
	}
	// ptah registra cada paso en slog; el resumen se escribe con zerolog.
	runner = runner.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &Migrator{conn: conn, runner: runner, log: log.Named("migrator")}, nil
}

// Close libera la conexión.
func (m *Migrator) Close() {
	m.conn.Close()
}

// Up aplica las pendientes y devuelve sus versiones.
func (m *Migrator) Up(ctx context.Context) ([]int, error) {
	pending, err := m.runner.GetPendingMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar pendientes: %w", err)
	}
	if len(pending) == 0 {
		return []int{}, nil
	}
	if err := m.runner.MigrateUp(ctx); err != nil {
		return nil, err
	}
	m.log.Info().Ints("versions", pending).Msg("migraciones aplicadas")
	return pending, nil
}

// Down revierte la última versión aplicada y la devuelve; 0 si no había ninguna.
func (m *Migrator) Down(ctx context.Context) (int, error) {
	current, err := m.runner.GetCurrentVersion(ctx)
	if err != nil {
		return 0, err
	}
	if current == 0 {
		return 0, nil
	}
	if err := m.runner.MigrateDown(ctx); err != nil {
		return 0, err
	}
	m.log.Info().Int("version", current).Msg("migración revertida")
	return current, nil
}

// Status versión actual y pendientes.
func (m *Migrator) Status(ctx context.Context) (*migrator.MigrationStatus, error) {
	return m.runner.GetMigrationStatus(ctx)
}
