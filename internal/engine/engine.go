// Package engine implements the build-matching and scoring engine: given a
// budget, a workload mode, a target resolution and read-only part catalogs,
// it selects the best mutually-compatible combination of one part per
// category within budget, plus ranked alternatives and derived performance
// estimates.
//
// The engine is purely computational. It performs no I/O, never mutates the
// catalog, and constructs all memoization state fresh on every Search call.
package engine

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// Workload modes.
const (
	ModeGaming      = "gaming"
	ModeWorkstation = "workstation"
)

// Supported target resolutions.
const (
	Resolution1080p = "1080p"
	Resolution1440p = "1440p"
	Resolution4K    = "4k"
)

// Request validation errors, distinct from a feasible-but-empty search.
var (
	ErrInvalidBudget     = errors.New("budget must be positive")
	ErrInvalidMode       = errors.New("mode must be gaming or workstation")
	ErrInvalidResolution = errors.New("resolution must be 1080p, 1440p or 4k")
)

// Request describes one search invocation. Budget is in the catalog's
// normalized price unit; currency conversion happens upstream.
type Request struct {
	ID         uuid.UUID `json:"id"`
	Budget     float64   `json:"budget"`
	Mode       string    `json:"mode"`
	Resolution string    `json:"resolution"`
}

// Validate rejects malformed requests before any search work begins.
func (r Request) Validate() error {
	if r.Budget <= 0 {
		return ErrInvalidBudget
	}
	switch r.Mode {
	case ModeGaming, ModeWorkstation:
	default:
		return ErrInvalidMode
	}
	switch r.Resolution {
	case Resolution1080p, Resolution1440p, Resolution4K:
	default:
		return ErrInvalidResolution
	}
	return nil
}

// BottleneckType classifies which side limits gaming frame rate.
type BottleneckType string

const (
	BottleneckCPU     BottleneckType = "CPU"
	BottleneckGPU     BottleneckType = "GPU"
	BottleneckUnknown BottleneckType = "unknown"
)

// GameFPS is the per-game frame rate decomposition. Overall is the minimum
// of the two sides.
type GameFPS struct {
	CPU     float64 `json:"cpu"`
	GPU     float64 `json:"gpu"`
	Overall float64 `json:"overall"`
}

// BuildCandidate aggregates exactly one part per category plus derived
// values. Candidates are created by the search loop and never mutated after
// construction.
type BuildCandidate struct {
	CPU         *parts.CPU         `json:"cpu"`
	GPU         *parts.GPU         `json:"gpu"`
	Motherboard *parts.Motherboard `json:"motherboard"`
	RAM         *parts.RAM         `json:"ram"`
	Storage     *parts.Storage     `json:"storage"`
	PSU         *parts.PSU         `json:"psu"`
	Cooler      *parts.Cooler      `json:"cooler"`
	Case        *parts.Case        `json:"case"`

	TotalPrice float64 `json:"total_price"`
	TotalScore float64 `json:"total_score"`

	BottleneckPct  float64        `json:"bottleneck_pct"`
	BottleneckType BottleneckType `json:"bottleneck_type"`

	// FPS is populated in gaming mode, RenderTimeMin in workstation mode.
	FPS           map[string]GameFPS `json:"fps,omitempty"`
	RenderTimeMin float64            `json:"render_time_min,omitempty"`
}

// Diagnostics counts what the enumeration did and why trios were rejected.
// It is returned on every search, feasible or not, and is the only
// observability channel out of the engine besides the logger.
type Diagnostics struct {
	RequestID uuid.UUID `json:"request_id"`

	TriosEvaluated int `json:"trios_evaluated"`
	FailBudget     int `json:"fail_budget"`
	FailMobo       int `json:"fail_mobo"`
	FailStorage    int `json:"fail_storage"`
	FailPSU        int `json:"fail_psu"`
	FailCooler     int `json:"fail_cooler"`
	FailCase       int `json:"fail_case"`

	CandidatesFound int  `json:"candidates_found"`
	SecondPassRun   bool `json:"second_pass_run"`
}

// DominantFailure names the constraint that rejected the most trios, for
// operator debugging when no build is feasible. Empty when nothing failed.
func (d Diagnostics) DominantFailure() string {
	type failure struct {
		name  string
		count int
	}
	// Order matters for ties: the earliest listed wins, which keeps the
	// output stable across runs.
	failures := []failure{
		{"fail_mobo", d.FailMobo},
		{"fail_storage", d.FailStorage},
		{"fail_psu", d.FailPSU},
		{"fail_cooler", d.FailCooler},
		{"fail_case", d.FailCase},
		{"fail_budget", d.FailBudget},
	}
	best := failure{}
	for _, f := range failures {
		if f.count > best.count {
			best = f
		}
	}
	return best.name
}

// Result is the complete output of one search. Best is nil when no
// combination satisfies all constraints within budget; Diagnostics explains
// why. Alternatives are all collected candidates sorted by score descending
// and always include the winner.
type Result struct {
	Best         *BuildCandidate  `json:"best,omitempty"`
	Alternatives []BuildCandidate `json:"alternatives"`
	Diagnostics  Diagnostics      `json:"diagnostics"`
}
