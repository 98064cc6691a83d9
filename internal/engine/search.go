package engine

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// Bounded-effort search limits. The engine is a heuristic search, not a
// solver: it stops once enough good candidates are collected.
const (
	// perCPUDiversityCap keeps one strong CPU from crowding the
	// alternatives list with near-identical builds.
	perCPUDiversityCap = 3

	// globalCandidateCap stops enumeration outright.
	globalCandidateCap = 40

	// secondPassDDR5Share triggers the exploratory DDR4 pass when this
	// share of first-pass candidates landed on DDR5.
	secondPassDDR5Share = 0.70

	// secondPassTopN bounds the CPUs and GPUs re-evaluated in that pass.
	secondPassTopN = 8
)

// comboKey identifies an explored CPU/GPU/RAM trio, so the second pass
// never records a duplicate of a first-pass candidate.
type comboKey struct {
	cpu, gpu, ram uuid.UUID
}

// searcher carries the per-request state through the enumeration.
type searcher struct {
	req     Request
	reduced *reducedCatalog
	cache   *compatCache
	idx     *searchIndex
	diag    *Diagnostics
	logger  *slog.Logger

	seen       map[comboKey]bool
	candidates []BuildCandidate
}

// Search runs one complete build-matching request against the given
// catalogs. It validates the request, reduces the candidate space, builds
// the per-request indexes and caches, enumerates trios, and returns the
// best-scoring feasible build plus ranked alternatives and diagnostics.
//
// A request with no feasible build is not an error: Result.Best is nil and
// Result.Diagnostics carries the per-constraint rejection counts.
func Search(req Request, cat *parts.Catalog, logger *slog.Logger) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	reduced := prefilter(cat, req.Budget, req.Mode)
	cache := newCompatCache()
	idx := buildIndex(reduced, cache)

	s := &searcher{
		req:     req,
		reduced: reduced,
		cache:   cache,
		idx:     idx,
		diag:    &Diagnostics{RequestID: req.ID},
		logger:  logger,
		seen:    make(map[comboKey]bool),
	}

	logger.Debug("search space reduced",
		"request_id", req.ID,
		"cpus", len(reduced.cpus),
		"gpus", len(reduced.gpus),
		"rams", len(reduced.rams),
		"mobos", len(reduced.mobos),
	)

	s.enumerate(reduced.cpus, reduced.gpus, nil)

	if s.shouldRunSecondPass() {
		s.diag.SecondPassRun = true
		cpus := topN(reduced.cpus, secondPassTopN)
		gpus := topN(reduced.gpus, secondPassTopN)
		s.enumerate(cpus, gpus, reduced.ddr4RAMs)
	}

	s.diag.CandidatesFound = len(s.candidates)

	result := &Result{Diagnostics: *s.diag}
	if len(s.candidates) == 0 {
		logger.Info("no feasible build",
			"request_id", req.ID,
			"trios", s.diag.TriosEvaluated,
			"dominant_failure", s.diag.DominantFailure(),
		)
		result.Alternatives = []BuildCandidate{}
		return result, nil
	}

	sortCandidates(s.candidates)
	result.Alternatives = s.candidates
	result.Best = &s.candidates[0]

	logger.Info("search completed",
		"request_id", req.ID,
		"trios", s.diag.TriosEvaluated,
		"candidates", len(s.candidates),
		"best_score", result.Best.TotalScore,
		"best_price", result.Best.TotalPrice,
	)
	return result, nil
}

// enumerate walks the CPU x GPU x RAM space, resolving the remaining four
// categories from the precomputed indexes. ramOverride, when non-nil,
// replaces each CPU's allowed-RAM shortlist (used by the DDR4 second pass).
func (s *searcher) enumerate(cpus []*parts.CPU, gpus []*parts.GPU, ramOverride []*parts.RAM) {
	for _, cpu := range cpus {
		if len(s.candidates) >= globalCandidateCap {
			return
		}

		rams := s.idx.ramsByCPU[cpu.ID]
		if ramOverride != nil {
			rams = allowedRAM(ramOverride, s.idx.mobosByCPU[cpu.ID])
		}

		var forCPU []BuildCandidate
		for _, gpu := range gpus {
			for _, ram := range rams {
				key := comboKey{cpu.ID, gpu.ID, ram.ID}
				if s.seen[key] {
					continue
				}
				s.seen[key] = true

				if c := s.resolveTrio(cpu, gpu, ram); c != nil {
					forCPU = append(forCPU, *c)
				}
			}
		}

		// Diversity cap: keep only the top-scoring candidates for this CPU.
		sortCandidates(forCPU)
		if len(forCPU) > perCPUDiversityCap {
			forCPU = forCPU[:perCPUDiversityCap]
		}
		s.candidates = append(s.candidates, forCPU...)
	}
}

// resolveTrio turns one CPU/GPU/RAM trio into a full candidate, or returns
// nil with the matching diagnostic counter bumped.
func (s *searcher) resolveTrio(cpu *parts.CPU, gpu *parts.GPU, ram *parts.RAM) *BuildCandidate {
	s.diag.TriosEvaluated++

	trioPrice := parts.PriceOf(cpu.Price) + parts.PriceOf(gpu.Price) + parts.PriceOf(ram.Price)
	if trioPrice > s.req.Budget {
		s.diag.FailBudget++
		return nil
	}

	var mobo *parts.Motherboard
	for _, m := range s.idx.mobosByCPU[cpu.ID] { // price ascending
		if s.cache.moboRAMOK(m, ram) {
			mobo = m
			break
		}
	}
	if mobo == nil {
		s.diag.FailMobo++
		return nil
	}

	storage := s.idx.cheapestStorage[mobo.ID]
	if storage == nil {
		s.diag.FailStorage++
		return nil
	}

	psu := s.idx.cheapestPSU[pairKey{cpu.ID, gpu.ID}]
	if psu == nil {
		s.diag.FailPSU++
		return nil
	}

	coolers := s.idx.coolersByCPU[cpu.ID]
	if len(coolers) == 0 {
		s.diag.FailCooler++
		return nil
	}
	cooler := coolers[0]

	cs := s.idx.cheapestCase[mobo.ID]
	if cs == nil {
		s.diag.FailCase++
		return nil
	}

	total := trioPrice +
		parts.PriceOf(mobo.Price) +
		parts.PriceOf(storage.Price) +
		parts.PriceOf(psu.Price) +
		parts.PriceOf(cooler.Price) +
		parts.PriceOf(cs.Price)
	if total > s.req.Budget {
		s.diag.FailBudget++
		return nil
	}

	c := &BuildCandidate{
		CPU:         cpu,
		GPU:         gpu,
		Motherboard: mobo,
		RAM:         ram,
		Storage:     storage,
		PSU:         psu,
		Cooler:      cooler,
		Case:        cs,
		TotalPrice:  total,
		TotalScore:  TrioScore(cpu, gpu, ram, s.req.Mode, s.req.Resolution),
	}
	c.BottleneckType, c.BottleneckPct = Bottleneck(cpu, gpu, s.req.Mode, s.req.Resolution)
	if s.req.Mode == ModeWorkstation {
		c.RenderTimeMin = EstimateRenderTime(cpu, gpu)
	} else {
		c.FPS = EstimateFPS(cpu, gpu, s.req.Mode, s.req.Resolution)
	}
	return c
}

// shouldRunSecondPass reports whether the first pass was dominated by DDR5
// kits, in which case a narrow DDR4 pass keeps the alternatives list from
// representing only one RAM tier.
func (s *searcher) shouldRunSecondPass() bool {
	if len(s.candidates) == 0 || len(s.reduced.ddr4RAMs) == 0 {
		return false
	}
	ddr5 := 0
	for i := range s.candidates {
		if ramGeneration(s.candidates[i].RAM) == "ddr5" {
			ddr5++
		}
	}
	return float64(ddr5)/float64(len(s.candidates)) > secondPassDDR5Share
}

// sortCandidates orders by score descending with price and CPU id as
// tie-breaks, so identical inputs always produce identical output order.
func sortCandidates(cs []BuildCandidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].TotalScore != cs[j].TotalScore {
			return cs[i].TotalScore > cs[j].TotalScore
		}
		if cs[i].TotalPrice != cs[j].TotalPrice {
			return cs[i].TotalPrice < cs[j].TotalPrice
		}
		if cs[i].CPU.ID != cs[j].CPU.ID {
			return lessID(cs[i].CPU.ID, cs[j].CPU.ID)
		}
		if cs[i].GPU.ID != cs[j].GPU.ID {
			return lessID(cs[i].GPU.ID, cs[j].GPU.ID)
		}
		return lessID(cs[i].RAM.ID, cs[j].RAM.ID)
	})
}

func topN[T any](in []*T, n int) []*T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
