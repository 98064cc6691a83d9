package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/engine"
	"github.com/Ruon90/PCBuildMate/internal/events"
	"github.com/Ruon90/PCBuildMate/internal/store"
)

type BuildsHandler struct {
	store  store.CatalogStore
	events events.Client
	logger *slog.Logger
}

func NewBuildsHandler(s store.CatalogStore, ev events.Client, logger *slog.Logger) *BuildsHandler {
	return &BuildsHandler{store: s, events: ev, logger: logger}
}

type SearchBuildRequest struct {
	Budget     float64 `json:"budget"`
	Mode       string  `json:"mode"`
	Resolution string  `json:"resolution"`
}

type SearchBuildResponse struct {
	SearchID     uuid.UUID               `json:"search_id"`
	Best         *engine.BuildCandidate  `json:"best,omitempty"`
	Alternatives []engine.BuildCandidate `json:"alternatives"`
	Diagnostics  engine.Diagnostics      `json:"diagnostics"`
}

func (h *BuildsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	searchReq := engine.Request{
		ID:         uuid.New(),
		Budget:     req.Budget,
		Mode:       req.Mode,
		Resolution: req.Resolution,
	}
	if err := searchReq.Validate(); err != nil {
		searchesTotal.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	catalog, err := h.store.LoadCatalog(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := engine.Search(searchReq, catalog, h.logger)
	if err != nil {
		// Validate already ran, so any error here is a programming bug about
		// the request itself.
		if errors.Is(err, engine.ErrInvalidBudget) || errors.Is(err, engine.ErrInvalidMode) || errors.Is(err, engine.ErrInvalidResolution) {
			searchesTotal.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	elapsed := time.Since(start)
	searchDuration.Observe(elapsed.Seconds())

	h.publish(searchReq, result, elapsed)

	writeJSON(w, http.StatusOK, SearchBuildResponse{
		SearchID:     searchReq.ID,
		Best:         result.Best,
		Alternatives: result.Alternatives,
		Diagnostics:  result.Diagnostics,
	})
}

func (h *BuildsHandler) publish(req engine.Request, result *engine.Result, elapsed time.Duration) {
	if result.Best != nil {
		searchesTotal.WithLabelValues("matched").Inc()
		if h.events != nil {
			_ = h.events.Publish(events.SubjectSearchCompleted(req.ID.String()), events.SearchCompletedEvent{
				SearchID:     req.ID,
				Budget:       req.Budget,
				Mode:         req.Mode,
				Resolution:   req.Resolution,
				TotalPrice:   result.Best.TotalPrice,
				TotalScore:   result.Best.TotalScore,
				Alternatives: len(result.Alternatives),
				DurationMs:   float64(elapsed.Milliseconds()),
				Timestamp:    time.Now().UTC(),
			})
		}
		return
	}

	searchesTotal.WithLabelValues("unmatched").Inc()
	if h.events != nil {
		_ = h.events.Publish(events.SubjectSearchUnmatched(req.ID.String()), events.SearchUnmatchedEvent{
			SearchID:        req.ID,
			Budget:          req.Budget,
			Mode:            req.Mode,
			Resolution:      req.Resolution,
			DominantFailure: result.Diagnostics.DominantFailure(),
			Timestamp:       time.Now().UTC(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
