package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_CuerpoInvalido_400(t *testing.T) {
	app := newAlertsApp(&fakeLowStock{})
	req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeBody(t, resp)["code"])
}

func TestRouter_RutaInexistente_404(t *testing.T) {
	resp := doRequest(t, newAlertsApp(&fakeLowStock{}), "/api/no-existe", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestRouter_VendedorNoCreaProductos(t *testing.T) {
	app := newAlertsApp(&fakeLowStock{})
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_IDNoNumerico_400(t *testing.T) {
	resp := doRequest(t, newAlertsApp(&fakeLowStock{}), "/api/products/abc", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decodeBody(t, resp)["code"])
}
