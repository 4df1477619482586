package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	healthCtrlImp "astro/pkg/health/controllerImp"

	"astro/database"
	"astro/pkg/catalog"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "astro.db"), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return New(echo.New(), NewAPI(catalog.NewServices(db), nil), nil, healthCtrlImp.NewHealthCtrl(db, nil), nil)
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type row = map[string]any

func TestObjectObservationsScenario(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodPost, "/api/types", row{"name": "Planet"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode[row](t, rec)["id"])

	for i := 1; i <= 6; i++ {
		rec = do(t, e, http.MethodPost, "/api/objects", row{"name": fmt.Sprintf("Moon %d", i), "type_id": 1})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec = do(t, e, http.MethodPost, "/api/objects", row{"name": "Europa", "type_id": 1, "designation": "Jupiter II"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 7, decode[row](t, rec)["id"])

	rec = do(t, e, http.MethodPost, "/api/places", row{"name": "Greenwich"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1, decode[row](t, rec)["id"])

	rec = do(t, e, http.MethodPost, "/api/instruments", row{"name": "Celestron"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1, decode[row](t, rec)["id"])

	rec = do(t, e, http.MethodPost, "/api/observations", row{
		"object_id": 7, "place_id": 1, "instrument_id": 1,
		"observation_datetime": "2024-01-01T00:00:00",
		"observation_text":     "Subsurface ocean detected",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[row](t, rec)
	assert.EqualValues(t, 1, created["id"])
	assert.Equal(t, "Europa", created["object_name"])

	rec = do(t, e, http.MethodGet, "/api/objects/7/observations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]row](t, rec)
	require.Len(t, list, 1)
	assert.EqualValues(t, 1, list[0]["id"])
	assert.Equal(t, "Subsurface ocean detected", list[0]["observation_text"])
	assert.Equal(t, "2024-01-01T00:00:00Z", list[0]["observation_datetime"])

	rec = do(t, e, http.MethodGet, "/api/objects/1/observations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/places/1/observations", nil)
	assert.Len(t, decode[[]row](t, rec), 1)
	rec = do(t, e, http.MethodGet, "/api/instruments/1/observations", nil)
	assert.Len(t, decode[[]row](t, rec), 1)
	rec = do(t, e, http.MethodGet, "/api/instruments/9/observations", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCrudStatusCodes(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodPost, "/api/properties", row{"name": "Magnitude"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "value_type: is required", decode[row](t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/properties", row{"name": "Magnitude", "value_type": "float"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodPut, "/api/properties/1", row{"value_type": "string"})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[row](t, rec)
	assert.Equal(t, "Magnitude", got["name"])
	assert.Equal(t, "string", got["value_type"])

	rec = do(t, e, http.MethodGet, "/api/properties", nil)
	assert.Len(t, decode[[]row](t, rec), 1)

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec = do(t, e, m, "/api/properties/99", row{"name": "x"})
		assert.Equal(t, http.StatusNotFound, rec.Code, m)
		assert.Equal(t, "property 99 not found", decode[row](t, rec)["error"], m)
	}

	rec = do(t, e, http.MethodGet, "/api/properties/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/types", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodDelete, "/api/properties/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, e, http.MethodGet, "/api/properties/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissingIDsAreNotFound(t *testing.T) {
	e := newServer(t)

	cases := []struct {
		path   string
		entity string
	}{
		{"/api/types", "type"},
		{"/api/properties", "property"},
		{"/api/places", "place"},
		{"/api/instruments", "instrument"},
		{"/api/objects", "object"},
		{"/api/observations", "observation"},
	}
	for _, tc := range cases {
		t.Run(tc.entity, func(t *testing.T) {
			for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
				var body any
				if m == http.MethodPut {
					body = row{}
				}
				rec := do(t, e, m, tc.path+"/42", body)
				assert.Equal(t, http.StatusNotFound, rec.Code, m)
				assert.Equal(t, tc.entity+" 42 not found", decode[row](t, rec)["error"], m)
			}
		})
	}
}

func TestDeleteReferencedTypeIsConflict(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/types", row{"name": "Planet"}).Code)
	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/objects", row{"name": "Mars", "type_id": 1}).Code)

	rec := do(t, e, http.MethodDelete, "/api/types/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "type 1 is still referenced by 1 objects", decode[row](t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/objects", row{"name": "Ceres", "type_id": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type_id: type 5 does not exist", decode[row](t, rec)["error"])
}

func TestSearchAndExport(t *testing.T) {
	e := newServer(t)
	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/types", row{"name": "Planet"}).Code)
	for _, name := range []string{"Mars", "Jupiter"} {
		require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/objects", row{"name": name, "type_id": 1}).Code)
	}
	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/places", row{"name": "Greenwich"}).Code)
	require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/instruments", row{"name": "Celestron"}).Code)

	for _, o := range []row{
		{"object_id": 1, "observation_datetime": "2024-01-01T20:00:00", "observation_text": "mars jan"},
		{"object_id": 2, "observation_datetime": "2024-01-15T21:00:00", "observation_text": "jupiter jan"},
		{"object_id": 1, "observation_datetime": "2024-02-01T22:00:00", "observation_text": "mars feb"},
	} {
		o["place_id"], o["instrument_id"] = 1, 1
		require.Equal(t, http.StatusCreated, do(t, e, http.MethodPost, "/api/observations", o).Code)
	}

	texts := func(rows []row) []any {
		out := []any{}
		for _, r := range rows {
			out = append(out, r["observation_text"])
		}
		return out
	}

	rec := do(t, e, http.MethodGet, "/api/observations/search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"mars feb", "jupiter jan", "mars jan"}, texts(decode[[]row](t, rec)))

	rec = do(t, e, http.MethodGet, "/api/observations", nil)
	assert.Equal(t, []any{"mars feb", "jupiter jan", "mars jan"}, texts(decode[[]row](t, rec)))

	rec = do(t, e, http.MethodGet, "/api/observations/search?start_date=2024-01-01&end_date=2024-01-31&object_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"mars jan"}, texts(decode[[]row](t, rec)))

	rec = do(t, e, http.MethodGet, "/api/observations/search?end_date=2024-01-15", nil)
	assert.Equal(t, []any{"jupiter jan", "mars jan"}, texts(decode[[]row](t, rec)))

	rec = do(t, e, http.MethodGet, "/api/observations/search?object_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/observations/export?object_id=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "observations.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	sheet, err := f.GetRows("Observations")
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	assert.Equal(t, "mars feb", sheet[1][7])
	assert.Equal(t, "Mars", sheet[2][2])
}

func TestHealthRoute(t *testing.T) {
	e := newServer(t)
	rec := do(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode[row](t, rec)["status"].(map[string]any)["ok"])
}
