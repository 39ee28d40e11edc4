// Package sku normaliza códigos SKU antes de persistirlos.
// La unicidad de products.sku es global, así que "abc-1", "ABC-1" y "ＡＢＣ-1" (ancho completo)
// deben colapsar al mismo valor.
package sku

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxLength coincide con VARCHAR(100) de products.sku.
const MaxLength = 100

// Normalize aplica NFKC, recorta espacios y pasa a mayúsculas.
// Solo se aceptan letras, dígitos y los separadores - _ . /
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	if s == "" {
		return "", fmt.Errorf("sku: vacío")
	}
	s = cases.Upper(language.Und).String(s) // un Caser no es seguro entre goroutines
	if n := utf8.RuneCountInString(s); n > MaxLength {
		return "", fmt.Errorf("sku: máximo %d caracteres, recibidos %d", MaxLength, n)
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '-', '_', '.', '/':
			continue
		}
		return "", fmt.Errorf("sku: carácter no permitido %q", r)
	}
	return s, nil
}
