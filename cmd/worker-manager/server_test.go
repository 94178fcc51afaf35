// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/logger"
)

type fakeEngine struct {
	err error
}

func (f fakeEngine) HealthCheck(context.Context) error { return f.err }

func loadedStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore(catalog.Options{Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	require.NoError(t, store.Reload(context.Background()))
	return store
}

func TestRouter_Ready(t *testing.T) {
	emptyStore, err := catalog.NewStore(catalog.Options{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		store      *catalog.Store
		engine     HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"ready", loadedStore(t), fakeEngine{}, http.StatusOK, "ready"},
		{"no engine probe", loadedStore(t), nil, http.StatusOK, "ready"},
		{"empty catalog", emptyStore, fakeEngine{}, http.StatusServiceUnavailable, "catalog empty"},
		{"engine down", loadedStore(t), fakeEngine{err: errors.New("unavailable")}, http.StatusServiceUnavailable, "workflow engine unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(tt.store, tt.engine, logger.NewTestLogger(t))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body["status"])
		})
	}
}

func TestRouter_HealthMetricsAndCatalog(t *testing.T) {
	r := newRouter(loadedStore(t), nil, logger.NewTestLogger(t))

	for _, path := range []string{"/health", "/metrics", "/catalog/packages"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
