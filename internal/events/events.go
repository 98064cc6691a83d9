// Package events publishes build-search lifecycle events over NATS so
// downstream consumers (analytics, catalog curation) can react to what
// users searched for and whether a build was found.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	StreamName   = "BUILDMATE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSearchCompleted(searchID string) string { return "pcbuild.search." + searchID + ".completed" }
func SubjectSearchUnmatched(searchID string) string { return "pcbuild.search." + searchID + ".unmatched" }

// SearchCompletedEvent is emitted when a search produced at least one build.
type SearchCompletedEvent struct {
	SearchID     uuid.UUID `json:"search_id"`
	Budget       float64   `json:"budget"`
	Mode         string    `json:"mode"`
	Resolution   string    `json:"resolution"`
	TotalPrice   float64   `json:"total_price"`
	TotalScore   float64   `json:"total_score"`
	Alternatives int       `json:"alternatives"`
	DurationMs   float64   `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}

// SearchUnmatchedEvent is emitted when no compatible build fit the budget.
type SearchUnmatchedEvent struct {
	SearchID        uuid.UUID `json:"search_id"`
	Budget          float64   `json:"budget"`
	Mode            string    `json:"mode"`
	Resolution      string    `json:"resolution"`
	DominantFailure string    `json:"dominant_failure,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
