package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-extras/cobraflags"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockflow-api/pkg/sku"
)

const (
	inputFlag     = "input"
	encodingFlag  = "encoding"
	separatorFlag = "separator"
	sqlFileFlag   = "sql-file"
)

func catalogFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		inputFlag: &cobraflags.StringFlag{
			Name:  inputFlag,
			Value: "catalogo.csv",
			Usage: "CSV del proveedor con columnas sku, nombre, precio y tipo (opcional)",
		},
		encodingFlag: &cobraflags.StringFlag{
			Name:  encodingFlag,
			Value: "utf-8",
			Usage: "Codificación del archivo: utf-8 o iso-8859-1",
		},
		separatorFlag: &cobraflags.StringFlag{
			Name:  separatorFlag,
			Value: ";",
			Usage: "Separador de columnas",
		},
		sqlFileFlag: &cobraflags.StringFlag{
			Name:  sqlFileFlag,
			Value: "",
			Usage: "Archivo SQL de salida; vacío escribe en stdout",
		},
	}
}

// catalogRow una fila válida del catálogo, con SKU ya normalizado.
type catalogRow struct {
	SKU   string
	Name  string
	Price decimal.Decimal
	Type  string
}

func newCatalogSQLCommand() *cobra.Command {
	flags := catalogFlags()
	cmd := &cobra.Command{
		Use:   "catalog-sql",
		Short: "Genera SQL idempotente de productos a partir de un CSV de proveedor",
		Long: `Lee un catálogo CSV (muchos proveedores lo exportan en ISO-8859-1) y escribe un script
con INSERT ... ON CONFLICT para tipos de producto y productos. No crea inventario:
el stock se registra después vía movimientos.

  stockflowctl catalog-sql --input proveedor.csv --encoding iso-8859-1 --sql-file seed.sql`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sep, _ := utf8.DecodeRuneInString(flags[separatorFlag].GetString())
			if sep == utf8.RuneError {
				return fmt.Errorf("--%s inválido", separatorFlag)
			}
			in, err := os.Open(flags[inputFlag].GetString())
			if err != nil {
				return fmt.Errorf("abrir catálogo: %w", err)
			}
			defer in.Close()

			rows, skipped, err := readCatalog(in, flags[encodingFlag].GetString(), sep)
			if err != nil {
				return err
			}

			err = writeOutput(cmd.OutOrStdout(), flags[sqlFileFlag].GetString(), func(w io.Writer) error {
				return writeCatalogSQL(w, rows)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "generado: %d productos, %d filas descartadas\n", len(rows), len(skipped))
			for _, s := range skipped {
				fmt.Fprintln(cmd.ErrOrStderr(), "  "+s)
			}
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// readCatalog decodifica el CSV. La primera fila es encabezado. Filas inválidas se descartan
// y se describen en skipped; un SKU repetido conserva la última aparición.
func readCatalog(r io.Reader, encoding string, sep rune) (rows []catalogRow, skipped []string, err error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("catálogo vacío")
		}
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}

	bySKU := make(map[string]catalogRow)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row, reason := parseCatalogRecord(rec)
		if reason != "" {
			skipped = append(skipped, fmt.Sprintf("línea %d: %s", line, reason))
			continue
		}
		bySKU[row.SKU] = row
	}

	rows = make([]catalogRow, 0, len(bySKU))
	for _, row := range bySKU {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	return rows, skipped, nil
}

func parseCatalogRecord(rec []string) (catalogRow, string) {
	if len(rec) < 3 {
		return catalogRow{}, "faltan columnas"
	}
	code, err := sku.Normalize(rec[0])
	if err != nil {
		return catalogRow{}, err.Error()
	}
	name := strings.TrimSpace(rec[1])
	if name == "" {
		return catalogRow{}, "nombre vacío"
	}
	// Algunos ERP exportan coma decimal.
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[2]), ",", "."))
	if err != nil {
		return catalogRow{}, "precio inválido"
	}
	if price.IsNegative() {
		return catalogRow{}, "precio negativo"
	}
	row := catalogRow{SKU: code, Name: name, Price: price.Round(2)}
	if len(rec) > 3 {
		row.Type = strings.TrimSpace(rec[3])
	}
	return row, ""
}

func writeCatalogSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos generado por stockflowctl catalog-sql\n")
	b.WriteString("BEGIN;\n\n")

	types := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range rows {
		if r.Type != "" && !seen[r.Type] {
			seen[r.Type] = true
			types = append(types, r.Type)
		}
	}
	sort.Strings(types)
	if len(types) > 0 {
		b.WriteString("INSERT INTO product_types (name) VALUES\n")
		for i, t := range types {
			sep := ","
			if i == len(types)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  (%s)%s\n", quoteSQL(t), sep)
		}
		b.WriteString("ON CONFLICT (name) DO NOTHING;\n\n")
	}

	for _, r := range rows {
		typeExpr := "NULL"
		if r.Type != "" {
			typeExpr = fmt.Sprintf("(SELECT id FROM product_types WHERE name = %s)", quoteSQL(r.Type))
		}
		fmt.Fprintf(&b, "INSERT INTO products (sku, name, price, product_type_id)\nVALUES (%s, %s, %s, %s)\n",
			quoteSQL(r.SKU), quoteSQL(r.Name), r.Price.StringFixed(2), typeExpr)
		b.WriteString("ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price,\n")
		b.WriteString("  product_type_id = COALESCE(EXCLUDED.product_type_id, products.product_type_id), updated_at = NOW();\n")
	}
	b.WriteString("\nCOMMIT;\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
