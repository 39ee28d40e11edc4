package main

import (
	"fmt"
	"io"
	"os"
)

// writeOutput escribe con fn en path, o en stdout si path está vacío.
func writeOutput(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeAndClose(f, fn); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// writeAndClose cierra w siempre; el error de Close se devuelve si fn no falló.
func writeAndClose(w io.WriteCloser, fn func(io.Writer) error) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cerrar salida: %w", cerr)
		}
	}()
	return fn(w)
}
