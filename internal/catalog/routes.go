// internal/catalog/routes.go
package catalog

import (
	"encoding/json"
	"net/http"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the catalog admin endpoints under /catalog.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/packages", handleList(store))
		r.Post("/packages", handleCreate(store))
		r.Get("/packages/{id}", handleGet(store))
		r.Put("/packages/{id}", handleUpdate(store))
		r.Delete("/packages/{id}", handleDelete(store))
		r.Post("/packages/{id}/duplicate", handleDuplicate(store))
		r.Get("/search", handleSearch(store))
		r.Post("/reload", handleReload(store))
	})
}

type listResponse struct {
	Version  uint64                  `json:"version"`
	Count    int                     `json:"count"`
	Packages []models.ServicePackage `json:"packages"`
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgs, version := store.SnapshotWithVersion()
		writeJSON(w, http.StatusOK, listResponse{Version: version, Count: len(pkgs), Packages: pkgs})
	}
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkg, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pkg)
	}
}

func handleCreate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pkg models.ServicePackage
		if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
			writeError(w, errors.NewInvalidArgumentError(err.Error(), err))
			return
		}
		created, err := store.Create(r.Context(), pkg)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pkg models.ServicePackage
		if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
			writeError(w, errors.NewInvalidArgumentError(err.Error(), err))
			return
		}
		updated, err := store.Update(r.Context(), chi.URLParam(r, "id"), pkg)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDuplicate(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dup, err := store.Duplicate(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, dup)
	}
}

func handleSearch(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgs := store.Search(r.Context(), r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, listResponse{Version: store.Version(), Count: len(pkgs), Packages: pkgs})
	}
}

func handleReload(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Reload(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"version": store.Version(), "count": store.Len()})
	}
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodePackageNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDuplicatePackage:
		return http.StatusConflict
	case errors.ErrCodeCatalogValidationFailed, errors.ErrCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeCatalogLoadFailed, errors.ErrCodeSearchQueryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	stdErr := errors.Normalize(err)
	writeJSON(w, statusFor(stdErr.Code), stdErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
