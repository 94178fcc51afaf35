package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultation-workers/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := newTestStore(t, Options{})
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_ListAndGet(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(t, r, http.MethodGet, "/catalog/packages", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list listResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Equal(t, 9, list.Count)
	assert.Equal(t, uint64(1), list.Version)

	rec = do(t, r, http.MethodGet, "/catalog/packages/growth-accelerator", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pkg models.ServicePackage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pkg))
	assert.Equal(t, "Growth Accelerator", pkg.Title)

	rec = do(t, r, http.MethodGet, "/catalog/packages/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "PACKAGE_NOT_FOUND")
}

func TestRoutes_Mutations(t *testing.T) {
	r, store := setupRouter(t)

	rec := do(t, r, http.MethodPost, "/catalog/packages", samplePackage("Pricing Review", models.TierGrowth))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 10, store.Len())

	rec = do(t, r, http.MethodPost, "/catalog/packages", samplePackage("Pricing Review", models.TierGrowth))
	assert.Equal(t, http.StatusConflict, rec.Code)

	invalid := samplePackage("No Features", models.TierGrowth)
	invalid.Features = nil
	rec = do(t, r, http.MethodPost, "/catalog/packages", invalid)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "CATALOG_VALIDATION_FAILED")

	rec = do(t, r, http.MethodPost, "/catalog/packages", samplePackage("!!! ???", models.TierGrowth))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 10, store.Len())

	update := samplePackage("Pricing Review", models.TierEnterprise)
	rec = do(t, r, http.MethodPut, "/catalog/packages/pricing-review", update)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := store.Get("pricing-review")
	require.NoError(t, err)
	assert.Equal(t, models.TierEnterprise, got.Tier)

	rec = do(t, r, http.MethodPost, "/catalog/packages/pricing-review/duplicate", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	_, err = store.Get("pricing-review-copy")
	assert.NoError(t, err)

	rec = do(t, r, http.MethodDelete, "/catalog/packages/pricing-review", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, r, http.MethodDelete, "/catalog/packages/pricing-review", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/catalog/packages", bytes.NewBufferString("{not json"))
	recBad := httptest.NewRecorder()
	r.ServeHTTP(recBad, req)
	assert.Equal(t, http.StatusUnprocessableEntity, recBad.Code)
}

func TestRoutes_SearchAndReload(t *testing.T) {
	r, store := setupRouter(t)

	rec := do(t, r, http.MethodGet, "/catalog/search?q=accelerator", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list listResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "growth-accelerator", list.Packages[0].ID)

	_, err := store.Create(t.Context(), samplePackage("Temporary", models.TierFoundation))
	require.NoError(t, err)

	rec = do(t, r, http.MethodPost, "/catalog/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9, store.Len())
}
