package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// A catalog whose only motherboard cannot host the only CPU. Every trio is
// rejected on the motherboard constraint, which the response diagnostics
// should surface.
func mismatchedCatalog() *parts.Catalog {
	cat := testCatalog()
	cat.Motherboards[0].Socket = "LGA1700"
	return cat
}

func TestSearchDiagnosticsSurfaceFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ev := &mockEvents{}
	router := NewRouter(&mockStore{catalog: mismatchedCatalog()}, ev, 120, logger)

	body := `{"budget":2000,"mode":"gaming","resolution":"1440p"}`
	req := httptest.NewRequest("POST", "/api/v1/builds/search", bytes.NewBufferString(body))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SearchBuildResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	assert.Nil(t, resp.Best)
	assert.Empty(t, resp.Alternatives)
	assert.Equal(t, 1, resp.Diagnostics.TriosEvaluated)
	assert.Equal(t, 1, resp.Diagnostics.FailMobo)
	assert.Zero(t, resp.Diagnostics.FailBudget)
	assert.Equal(t, "fail_mobo", resp.Diagnostics.DominantFailure())

	require.Len(t, ev.published, 1)
	assert.Contains(t, ev.published[0], ".unmatched")
}
