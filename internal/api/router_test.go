package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// Mocks
type mockStore struct {
	catalog *parts.Catalog
	loadErr error
}

func (m *mockStore) LoadCatalog(_ context.Context) (*parts.Catalog, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.catalog, nil
}
func (m *mockStore) Close() error { return nil }

type mockEvents struct {
	published []string
}

func (m *mockEvents) Publish(subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}
func (m *mockEvents) Close() {}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

// testCatalog holds one part per category, all mutually compatible, prices
// summing to 950.
func testCatalog() *parts.Catalog {
	return &parts.Catalog{
		CPUs: []*parts.CPU{{
			ID: uuid.New(), Brand: "AMD", Model: "Ryzen 5 5600", Socket: "AM4",
			Price: fp(200), BenchScore: fp(100), WorkstationScore: fp(80),
			OverclockedPower: ip(95),
		}},
		GPUs: []*parts.GPU{{
			ID: uuid.New(), Name: "RTX 4060",
			Price: fp(300), BenchScore: fp(150), WorkstationScore: fp(120),
			TDP: ip(200),
		}},
		Motherboards: []*parts.Motherboard{{
			ID: uuid.New(), Name: "MSI B550 Tomahawk", Socket: "AM4",
			Price: fp(100), FormFactor: "ATX", DDRVersion: "DDR4",
			DDRMaxSpeed: fp(3200), NVMeSupport: "True",
		}},
		RAMs: []*parts.RAM{{
			ID: uuid.New(), Name: "16GB DDR4-3000",
			Price: fp(80), DDRGeneration: "DDR4", FrequencyMHz: ip(3000),
			Benchmark: fp(50),
		}},
		Storages: []*parts.Storage{{
			ID: uuid.New(), Name: "500GB NVMe",
			Price: fp(60), CapacityGB: ip(500), Interface: "NVMe",
		}},
		PSUs: []*parts.PSU{{
			ID: uuid.New(), Name: "600W Gold",
			Price: fp(90), Wattage: ip(600), Efficiency: "80+ Gold",
		}},
		Coolers: []*parts.Cooler{{
			ID: uuid.New(), Name: "Tower Cooler",
			Price: fp(50), PowerThroughput: fp(120),
		}},
		Cases: []*parts.Case{{
			ID: uuid.New(), Name: "Mid Tower",
			Price: fp(70), CaseType: "ATX Mid Tower",
		}},
	}
}

func setupTestRouter() (http.Handler, *mockEvents) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ev := &mockEvents{}
	router := NewRouter(&mockStore{catalog: testCatalog()}, ev, 120, logger)
	return router, ev
}

func TestSearchBuilds(t *testing.T) {
	router, ev := setupTestRouter()

	body := `{"budget":1000,"mode":"gaming","resolution":"1080p"}`
	req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchBuildResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.SearchID == uuid.Nil {
		t.Error("expected a generated search id")
	}
	if resp.Best == nil {
		t.Fatalf("expected a build, diagnostics: %+v", resp.Diagnostics)
	}
	if resp.Best.TotalPrice != 950 {
		t.Errorf("total price = %v, want 950", resp.Best.TotalPrice)
	}
	if len(resp.Alternatives) == 0 {
		t.Error("expected alternatives to include the winner")
	}

	if len(ev.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ev.published))
	}
	want := "pcbuild.search." + resp.SearchID.String() + ".completed"
	if ev.published[0] != want {
		t.Errorf("published subject = %q, want %q", ev.published[0], want)
	}
}

func TestSearchBuildsUnmatched(t *testing.T) {
	router, ev := setupTestRouter()

	// Budget below any feasible combination.
	body := `{"budget":500,"mode":"gaming","resolution":"1080p"}`
	req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchBuildResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Best != nil {
		t.Error("expected no build at budget 500")
	}
	if resp.Alternatives == nil {
		t.Error("expected alternatives to decode as empty slice, got null")
	}

	if len(ev.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(ev.published))
	}
	want := "pcbuild.search." + resp.SearchID.String() + ".unmatched"
	if ev.published[0] != want {
		t.Errorf("published subject = %q, want %q", ev.published[0], want)
	}
}

func TestSearchBuildsInvalidRequest(t *testing.T) {
	router, ev := setupTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"zero budget", `{"budget":0,"mode":"gaming","resolution":"1080p"}`},
		{"bad mode", `{"budget":1000,"mode":"mining","resolution":"1080p"}`},
		{"bad resolution", `{"budget":1000,"mode":"gaming","resolution":"720p"}`},
		{"malformed json", `{"budget":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
	if len(ev.published) != 0 {
		t.Errorf("expected no events for invalid requests, got %d", len(ev.published))
	}
}

func TestSearchBuildsStoreError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(&mockStore{loadErr: errors.New("connection refused")}, nil, 120, logger)

	body := `{"budget":1000,"mode":"gaming","resolution":"1080p"}`
	req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestSearchBuildsNilEventsClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(&mockStore{catalog: testCatalog()}, nil, 120, logger)

	body := `{"budget":1000,"mode":"workstation","resolution":"1440p"}`
	req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SearchBuildResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Best == nil {
		t.Fatal("expected a build in workstation mode")
	}
	if resp.Best.RenderTimeMin <= 0 {
		t.Error("expected render time estimate in workstation mode")
	}
}

func TestListParts(t *testing.T) {
	router, _ := setupTestRouter()

	for _, category := range []string{"cpu", "gpu", "motherboard", "ram", "storage", "psu", "cooler", "case"} {
		t.Run(category, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/parts/"+category, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var items []json.RawMessage
			if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
				t.Fatalf("expected JSON array: %v", err)
			}
			if len(items) != 1 {
				t.Errorf("expected 1 item, got %d", len(items))
			}
		})
	}
}

func TestListPartsUnknownCategory(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/parts/flux-capacitor", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := NewMetricsRouter()
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(&mockStore{catalog: testCatalog()}, nil, 2, logger)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/v1/parts/cpu", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/api/v1/parts/cpu", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}
