package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog_UTF8(t *testing.T) {
	in := "sku;nombre;precio;tipo\n" +
		" lec-001 ;Leche entera;3500;perecedero\n" +
		"PAN-2;Pan tajado;4200,5;\n" +
		";Sin código;100;general\n" +
		"X-1;Negativo;-5;general\n" +
		"lec-001;Leche deslactosada;3700;perecedero\n"

	rows, skipped, err := readCatalog(strings.NewReader(in), "utf-8", ';')
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "LEC-001", rows[0].SKU)
	assert.Equal(t, "Leche deslactosada", rows[0].Name, "la última aparición del SKU gana")
	assert.Equal(t, "PAN-2", rows[1].SKU)
	assert.Equal(t, "4200.5", rows[1].Price.String())
	assert.Empty(t, rows[1].Type)
	assert.Len(t, skipped, 2)
}

func TestReadCatalog_ISO88591(t *testing.T) {
	utf := "sku;nombre;precio\nCAF-1;Café de Nariño;18000\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, _, err := readCatalog(strings.NewReader(latin), "ISO-8859-1", ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Café de Nariño", rows[0].Name)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, _, err := readCatalog(strings.NewReader(""), "utf-8", ';')
	assert.Error(t, err)

	_, _, err = readCatalog(strings.NewReader("a;b;c\n"), "ebcdic", ';')
	assert.ErrorContains(t, err, "codificación")
}

func TestWriteCatalogSQL(t *testing.T) {
	rows, _, err := readCatalog(strings.NewReader("sku,nombre,precio,tipo\nA-1,O'Brien,10,general\nB-2,Pan,2,\n"), "utf-8", ',')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeCatalogSQL(&buf, rows))
	sql := buf.String()

	assert.Contains(t, sql, "INSERT INTO product_types (name) VALUES\n  ('general')\nON CONFLICT (name) DO NOTHING;")
	assert.Contains(t, sql, "VALUES ('A-1', 'O''Brien', 10.00, (SELECT id FROM product_types WHERE name = 'general'))")
	assert.Contains(t, sql, "VALUES ('B-2', 'Pan', 2.00, NULL)")
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
