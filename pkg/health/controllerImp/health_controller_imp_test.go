package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astro/database"
)

func serveHealth(t *testing.T, h *HealthCtrl) (int, healthResponse) {
	t.Helper()
	e := echo.New()
	e.GET("/health", h.Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthOK(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "astro.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	code, body := serveHealth(t, NewHealthCtrl(db, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.Status.OK)
	assert.True(t, body.Checks["database"].OK)
}

func TestHealthStoreDown(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "astro.db"), nil)
	require.NoError(t, err)
	require.NoError(t, database.Close(db))

	code, body := serveHealth(t, NewHealthCtrl(db, nil))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, body.Status.OK)
	assert.Contains(t, body.Checks["database"].Err, "ping")
}
