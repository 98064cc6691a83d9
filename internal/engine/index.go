package engine

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// searchIndex holds the lookup structures built once per request before
// enumeration: compatible-part lists per CPU, cheapest resolutions per
// motherboard and per CPU/GPU pair. Like the compat cache it never outlives
// one Search call.
type searchIndex struct {
	mobosByCPU   map[uuid.UUID][]*parts.Motherboard // price ascending
	coolersByCPU map[uuid.UUID][]*parts.Cooler      // price ascending
	ramsByCPU    map[uuid.UUID][]*parts.RAM

	cheapestPSU     map[pairKey]*parts.PSU
	cheapestCase    map[uuid.UUID]*parts.Case
	cheapestStorage map[uuid.UUID]*parts.Storage
}

func buildIndex(r *reducedCatalog, cache *compatCache) *searchIndex {
	idx := &searchIndex{
		mobosByCPU:      make(map[uuid.UUID][]*parts.Motherboard, len(r.cpus)),
		coolersByCPU:    make(map[uuid.UUID][]*parts.Cooler, len(r.cpus)),
		ramsByCPU:       make(map[uuid.UUID][]*parts.RAM, len(r.cpus)),
		cheapestPSU:     make(map[pairKey]*parts.PSU, len(r.cpus)*len(r.gpus)),
		cheapestCase:    make(map[uuid.UUID]*parts.Case),
		cheapestStorage: make(map[uuid.UUID]*parts.Storage),
	}

	// Boards, coolers and cases in price order so "first compatible" is
	// "cheapest compatible" everywhere below.
	mobos := append([]*parts.Motherboard(nil), r.mobos...)
	sort.Slice(mobos, func(i, j int) bool {
		pi, pj := parts.PriceOf(mobos[i].Price), parts.PriceOf(mobos[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(mobos[i].ID, mobos[j].ID)
	})
	coolers := append([]*parts.Cooler(nil), r.coolers...)
	sort.Slice(coolers, func(i, j int) bool {
		pi, pj := parts.PriceOf(coolers[i].Price), parts.PriceOf(coolers[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(coolers[i].ID, coolers[j].ID)
	})
	cases := append([]*parts.Case(nil), r.cases...)
	sort.Slice(cases, func(i, j int) bool {
		pi, pj := parts.PriceOf(cases[i].Price), parts.PriceOf(cases[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(cases[i].ID, cases[j].ID)
	})

	// Socket index: normalized socket string to boards declaring it.
	socketIndex := make(map[string][]*parts.Motherboard)
	for _, m := range mobos {
		socketIndex[normalizeToken(m.Socket)] = append(socketIndex[normalizeToken(m.Socket)], m)
	}

	for _, cpu := range r.cpus {
		candidates := mobosForSocket(socketIndex, mobos, normalizeToken(cpu.Socket))
		var compat []*parts.Motherboard
		for _, m := range candidates {
			if cache.cpuMoboOK(cpu, m) {
				compat = append(compat, m)
			}
		}
		idx.mobosByCPU[cpu.ID] = compat

		var okCoolers []*parts.Cooler
		for _, c := range coolers {
			if cache.coolerOK(c, cpu) {
				okCoolers = append(okCoolers, c)
			}
		}
		idx.coolersByCPU[cpu.ID] = okCoolers

		idx.ramsByCPU[cpu.ID] = allowedRAM(r.rams, compat)
	}

	// Cheapest compatible case and storage per board, computed once rather
	// than per trio.
	for _, m := range mobos {
		for _, c := range cases {
			if cache.caseOK(m, c) {
				idx.cheapestCase[m.ID] = c
				break
			}
		}
		for _, s := range r.storages { // already price ascending
			if cache.storageOK(m, s) {
				idx.cheapestStorage[m.ID] = s
				break
			}
		}
	}

	// Cheapest PSU satisfying the wattage rule per CPU/GPU pair.
	psus := append([]*parts.PSU(nil), r.psus...)
	sort.Slice(psus, func(i, j int) bool {
		pi, pj := parts.PriceOf(psus[i].Price), parts.PriceOf(psus[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(psus[i].ID, psus[j].ID)
	})
	for _, cpu := range r.cpus {
		for _, gpu := range r.gpus {
			for _, p := range psus {
				if cache.psuOK(p, cpu, gpu) {
					idx.cheapestPSU[pairKey{cpu.ID, gpu.ID}] = p
					break
				}
			}
		}
	}

	return idx
}

// mobosForSocket resolves boards through the socket index, accepting
// substring matches between normalized sockets. When the CPU declares no
// socket, or no indexed socket matches, the full board list is the fallback
// so the permissive predicate still gets a chance.
func mobosForSocket(index map[string][]*parts.Motherboard, all []*parts.Motherboard, cpuSocket string) []*parts.Motherboard {
	if cpuSocket == "" {
		return all
	}
	var out []*parts.Motherboard
	for socket, group := range index {
		if socket == "" || socketsMatch(cpuSocket, socket) {
			out = append(out, group...)
		}
	}
	if len(out) == 0 {
		return all
	}
	// Map iteration order is random; restore price order.
	sort.Slice(out, func(i, j int) bool {
		pi, pj := parts.PriceOf(out[i].Price), parts.PriceOf(out[j].Price)
		if pi != pj {
			return pi < pj
		}
		return lessID(out[i].ID, out[j].ID)
	})
	return out
}

func socketsMatch(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// allowedRAM intersects the reduced RAM list against the highest DDR speed
// any of the CPU's compatible boards supports. A board without a declared
// max speed lifts the bound entirely. With no boards at all the full list
// passes through, so enumeration still evaluates the trios and records the
// motherboard rejections in the diagnostics.
func allowedRAM(rams []*parts.RAM, mobos []*parts.Motherboard) []*parts.RAM {
	if len(mobos) == 0 {
		return rams
	}
	unbounded := false
	maxSpeed := 0.0
	for _, m := range mobos {
		if m.DDRMaxSpeed == nil {
			unbounded = true
			break
		}
		if *m.DDRMaxSpeed > maxSpeed {
			maxSpeed = *m.DDRMaxSpeed
		}
	}
	if unbounded {
		return rams
	}
	var out []*parts.RAM
	for _, ram := range rams {
		if ram.FrequencyMHz == nil || float64(*ram.FrequencyMHz) <= maxSpeed {
			out = append(out, ram)
		}
	}
	return out
}
