package engine

import (
	"bytes"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// Budget policy constants for the reduction stage.
const (
	// Below this budget only previous-generation (DDR4) RAM is considered,
	// keeping cheap builds off expensive modern memory.
	ddr4OnlyBudget = 1150

	// Per-category affordability bounds as fractions of the total budget.
	cpuBudgetShare     = 0.30
	gpuBudgetShare     = 0.40
	ramBudgetShare     = 0.15
	storageBudgetShare = 0.40

	// Catalog-quality floor for PSUs before any pairing work.
	psuWattageFloor = 300
)

// commonStorageCapacities bounds storage candidates to mainstream sizes.
var commonStorageCapacities = map[int]bool{
	240: true, 250: true, 256: true,
	480: true, 500: true, 512: true,
	960: true, 1000: true, 1024: true,
	2000: true, 2048: true,
	4000: true, 4096: true,
}

// scoreCache holds benchmark scores computed during prefiltering, keyed by
// part id. Parts themselves are never mutated, so one catalog can serve
// concurrent searches.
type scoreCache struct {
	cpu map[uuid.UUID]float64
	gpu map[uuid.UUID]float64
	ram map[uuid.UUID]float64
}

// reducedCatalog is the narrowed candidate space handed to the search loop.
type reducedCatalog struct {
	cpus     []*parts.CPU
	gpus     []*parts.GPU
	mobos    []*parts.Motherboard
	rams     []*parts.RAM
	storages []*parts.Storage
	psus     []*parts.PSU
	coolers  []*parts.Cooler
	cases    []*parts.Case

	// ddr4RAMs keeps the previous-generation pool around for the
	// conditional second pass even when the main list is DDR5-heavy.
	ddr4RAMs []*parts.RAM

	scores *scoreCache
}

// topKTier scales the candidate window to the budget: cheaper budgets get a
// wider window because the affordability bounds have pruned less, and sort
// by score-per-price instead of raw score.
type topKTier struct {
	cpuN, gpuN, ramN int
	perPrice         bool
}

func tierFor(budget float64) topKTier {
	switch {
	case budget < 800:
		return topKTier{cpuN: 65, gpuN: 65, ramN: 15, perPrice: true}
	case budget < 1200:
		return topKTier{cpuN: 50, gpuN: 50, ramN: 12, perPrice: true}
	default:
		return topKTier{cpuN: 25, gpuN: 25, ramN: 10, perPrice: false}
	}
}

// lessID is the final tie-break on every sort in the engine, keeping output
// deterministic for identical catalogs.
func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// prefilter narrows each category's candidate set before enumeration:
// price validity, budget-tier RAM policy, affordability bounds, a PSU
// quality screen, and top-K truncation of the score-sorted CPU/GPU/RAM
// lists.
func prefilter(cat *parts.Catalog, budget float64, mode string) *reducedCatalog {
	r := &reducedCatalog{
		scores: &scoreCache{
			cpu: make(map[uuid.UUID]float64),
			gpu: make(map[uuid.UUID]float64),
			ram: make(map[uuid.UUID]float64),
		},
	}

	for _, c := range cat.CPUs {
		if parts.HasValidPrice(c.Price) && parts.PriceOf(c.Price) <= budget*cpuBudgetShare {
			r.cpus = append(r.cpus, c)
			r.scores.cpu[c.ID] = CPUScore(c, mode)
		}
	}
	for _, g := range cat.GPUs {
		if parts.HasValidPrice(g.Price) && parts.PriceOf(g.Price) <= budget*gpuBudgetShare {
			r.gpus = append(r.gpus, g)
			r.scores.gpu[g.ID] = GPUScore(g, mode)
		}
	}
	for _, m := range cat.Motherboards {
		if parts.HasValidPrice(m.Price) {
			r.mobos = append(r.mobos, m)
		}
	}
	for _, ram := range cat.RAMs {
		if !parts.HasValidPrice(ram.Price) || parts.PriceOf(ram.Price) > budget*ramBudgetShare {
			continue
		}
		gen := ramGeneration(ram)
		if gen == "ddr4" {
			r.ddr4RAMs = append(r.ddr4RAMs, ram)
		}
		if budget < ddr4OnlyBudget && gen != "ddr4" {
			continue
		}
		r.rams = append(r.rams, ram)
		r.scores.ram[ram.ID] = RAMScore(ram)
	}
	for _, ram := range r.ddr4RAMs {
		r.scores.ram[ram.ID] = RAMScore(ram)
	}
	for _, s := range cat.Storages {
		if !parts.HasValidPrice(s.Price) || parts.PriceOf(s.Price) > budget*storageBudgetShare {
			continue
		}
		if s.CapacityGB != nil && !commonStorageCapacities[*s.CapacityGB] {
			continue
		}
		r.storages = append(r.storages, s)
	}
	for _, p := range cat.PSUs {
		if !parts.HasValidPrice(p.Price) || !psuQualityOK(p) {
			continue
		}
		r.psus = append(r.psus, p)
	}
	for _, c := range cat.Coolers {
		if parts.HasValidPrice(c.Price) {
			r.coolers = append(r.coolers, c)
		}
	}
	for _, c := range cat.Cases {
		if parts.HasValidPrice(c.Price) {
			r.cases = append(r.cases, c)
		}
	}

	tier := tierFor(budget)

	sortCPUs(r.cpus, r.scores, tier.perPrice)
	if len(r.cpus) > tier.cpuN {
		r.cpus = r.cpus[:tier.cpuN]
	}
	sortGPUs(r.gpus, r.scores, tier.perPrice)
	if len(r.gpus) > tier.gpuN {
		r.gpus = r.gpus[:tier.gpuN]
	}

	r.rams = sortAndTruncateRAM(r.rams, r.scores, tier.ramN)
	sortRAMGroup(r.ddr4RAMs, r.scores)
	if len(r.ddr4RAMs) > tier.ramN {
		r.ddr4RAMs = r.ddr4RAMs[:tier.ramN]
	}

	sort.Slice(r.storages, func(i, j int) bool {
		pi, pj := parts.PriceOf(r.storages[i].Price), parts.PriceOf(r.storages[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(r.storages[i].ID, r.storages[j].ID)
	})

	return r
}

// psuQualityOK screens out catalog records with a missing or placeholder
// efficiency rating or an implausibly low wattage.
func psuQualityOK(p *parts.PSU) bool {
	eff := strings.ToLower(strings.TrimSpace(p.Efficiency))
	switch eff {
	case "", "-", "none", "n/a", "unknown":
		return false
	}
	return p.Wattage != nil && *p.Wattage >= psuWattageFloor
}

// ramGeneration normalizes a kit's declared generation, inferring from
// frequency when missing.
func ramGeneration(ram *parts.RAM) string {
	gen := normalizeToken(ram.DDRGeneration)
	if gen != "" {
		return gen
	}
	if ram.FrequencyMHz != nil {
		return inferDDRGeneration(float64(*ram.FrequencyMHz))
	}
	return ""
}

func sortCPUs(cpus []*parts.CPU, scores *scoreCache, perPrice bool) {
	sort.Slice(cpus, func(i, j int) bool {
		si, sj := scores.cpu[cpus[i].ID], scores.cpu[cpus[j].ID]
		if perPrice {
			si /= priceOrOne(cpus[i].Price)
			sj /= priceOrOne(cpus[j].Price)
		}
		if si != sj {
			return si > sj
		}
		return lessID(cpus[i].ID, cpus[j].ID)
	})
}

func sortGPUs(gpus []*parts.GPU, scores *scoreCache, perPrice bool) {
	sort.Slice(gpus, func(i, j int) bool {
		si, sj := scores.gpu[gpus[i].ID], scores.gpu[gpus[j].ID]
		if perPrice {
			si /= priceOrOne(gpus[i].Price)
			sj /= priceOrOne(gpus[j].Price)
		}
		if si != sj {
			return si > sj
		}
		return lessID(gpus[i].ID, gpus[j].ID)
	})
}

// sortAndTruncateRAM groups kits by generation, sorts each group by
// frequency desc, price asc, score desc, concatenates newest generation
// first and truncates to the tier bound.
func sortAndTruncateRAM(rams []*parts.RAM, scores *scoreCache, n int) []*parts.RAM {
	groups := make(map[string][]*parts.RAM)
	var gens []string
	for _, ram := range rams {
		gen := ramGeneration(ram)
		if _, ok := groups[gen]; !ok {
			gens = append(gens, gen)
		}
		groups[gen] = append(groups[gen], ram)
	}
	// "ddr5" sorts after "ddr4" lexically, so descending order puts the
	// newest generation first.
	sort.Sort(sort.Reverse(sort.StringSlice(gens)))

	out := make([]*parts.RAM, 0, len(rams))
	for _, gen := range gens {
		group := groups[gen]
		sortRAMGroup(group, scores)
		out = append(out, group...)
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortRAMGroup(group []*parts.RAM, scores *scoreCache) {
	sort.Slice(group, func(i, j int) bool {
		fi, fj := ramFreq(group[i]), ramFreq(group[j])
		if fi != fj {
			return fi > fj
		}
		pi, pj := parts.PriceOf(group[i].Price), parts.PriceOf(group[j].Price)
		if pi != pj {
			return pi < pj
		}
		si, sj := scores.ram[group[i].ID], scores.ram[group[j].ID]
		if si != sj {
			return si > sj
		}
		return lessID(group[i].ID, group[j].ID)
	})
}

func ramFreq(ram *parts.RAM) int {
	if ram.FrequencyMHz == nil {
		return 0
	}
	return *ram.FrequencyMHz
}

func priceOrOne(p *float64) float64 {
	v := parts.PriceOf(p)
	if v <= 0 {
		return 1
	}
	return v
}
