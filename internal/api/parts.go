package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ruon90/PCBuildMate/internal/parts"
	"github.com/Ruon90/PCBuildMate/internal/store"
)

type PartsHandler struct {
	store store.CatalogStore
}

func NewPartsHandler(s store.CatalogStore) *PartsHandler {
	return &PartsHandler{store: s}
}

func (h *PartsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := parts.Category(chi.URLParam(r, "category"))

	catalog, err := h.store.LoadCatalog(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	var out interface{}
	switch category {
	case parts.CategoryCPU:
		out = orEmpty(len(catalog.CPUs), catalog.CPUs)
	case parts.CategoryGPU:
		out = orEmpty(len(catalog.GPUs), catalog.GPUs)
	case parts.CategoryMotherboard:
		out = orEmpty(len(catalog.Motherboards), catalog.Motherboards)
	case parts.CategoryRAM:
		out = orEmpty(len(catalog.RAMs), catalog.RAMs)
	case parts.CategoryStorage:
		out = orEmpty(len(catalog.Storages), catalog.Storages)
	case parts.CategoryPSU:
		out = orEmpty(len(catalog.PSUs), catalog.PSUs)
	case parts.CategoryCooler:
		out = orEmpty(len(catalog.Coolers), catalog.Coolers)
	case parts.CategoryCase:
		out = orEmpty(len(catalog.Cases), catalog.Cases)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown part category"})
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// orEmpty keeps empty categories rendering as [] instead of null.
func orEmpty[T any](n int, s []T) interface{} {
	if n == 0 {
		return []T{}
	}
	return s
}
