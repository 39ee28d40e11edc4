package postgres_test

import (
	"io/fs"
	"testing"

	"github.com/stokaro/ptah/migration/migrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
)

func TestMigrationsFS_ParesUpDown(t *testing.T) {
	fsys, err := postgres.MigrationsFS()
	require.NoError(t, err)

	provider, err := migrator.NewFSMigrationProvider(fsys)
	require.NoError(t, err)

	migs := provider.Migrations()
	require.Len(t, migs, 2)
	assert.Equal(t, 1, migs[0].Version)
	assert.Equal(t, 2, migs[1].Version)
	assert.Equal(t, "Seed Product Types", migs[1].Description)
}

func TestMigrationsFS_EsquemaInicial(t *testing.T) {
	fsys, err := postgres.MigrationsFS()
	require.NoError(t, err)

	up, err := fs.ReadFile(fsys, "0000000001_initial_schema.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "CREATE TABLE inventory_transactions")
	assert.Contains(t, string(up), "CREATE TABLE sales")

	down, err := fs.ReadFile(fsys, "0000000001_initial_schema.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE")
}
