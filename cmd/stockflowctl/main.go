// stockflowctl herramientas de operación: migraciones, alertas de bajo stock desde consola
// y generación de SQL a partir de catálogos de proveedores.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockflowctl",
		Short:         "Herramientas de operación de StockFlow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newAlertsCommand())
	root.AddCommand(newCatalogSQLCommand())
	return root
}
