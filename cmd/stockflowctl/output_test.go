package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeFailWriter struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (w *closeFailWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func writeHola(w io.Writer) error {
	_, err := io.WriteString(w, "hola")
	return err
}

func TestWriteAndClose_DevuelveErrorDeClose(t *testing.T) {
	diskFull := errors.New("no queda espacio en el dispositivo")
	w := &closeFailWriter{closeErr: diskFull}

	err := writeAndClose(w, writeHola)
	assert.ErrorIs(t, err, diskFull)
	assert.True(t, w.closed)
	assert.Equal(t, "hola", w.String())
}

func TestWriteAndClose_ErrorDeEscrituraTienePrioridad(t *testing.T) {
	writeErr := errors.New("escritura fallida")
	w := &closeFailWriter{closeErr: errors.New("close fallido")}

	err := writeAndClose(w, func(io.Writer) error { return writeErr })
	assert.ErrorIs(t, err, writeErr)
	assert.True(t, w.closed, "se cierra aunque la escritura falle")
}

func TestWriteOutput_ArchivoYStdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, writeOutput(&stdout, "", writeHola))
	assert.Equal(t, "hola", stdout.String())

	path := filepath.Join(t.TempDir(), "alertas.json")
	require.NoError(t, writeOutput(&stdout, path, writeHola))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hola", string(got))

	err = writeOutput(&stdout, filepath.Join(t.TempDir(), "no", "existe", "x.sql"), writeHola)
	assert.Error(t, err)
}
