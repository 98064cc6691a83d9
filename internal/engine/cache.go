package engine

import (
	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// pairKey identifies a memoized pairwise predicate evaluation.
type pairKey struct {
	a, b uuid.UUID
}

// trioKey identifies a memoized PSU feasibility evaluation.
type trioKey struct {
	psu, cpu, gpu uuid.UUID
}

// compatCache memoizes pairwise compatibility results for the lifetime of
// one Search call. It is constructed fresh at the top of every search and
// never shared: a process-wide cache would leak stale results across
// requests using different catalogs.
type compatCache struct {
	cpuMobo map[pairKey]bool
	moboRAM map[pairKey]bool
	psu     map[trioKey]bool
	cooler  map[pairKey]bool
	moboCase map[pairKey]bool
	storage  map[pairKey]bool
}

func newCompatCache() *compatCache {
	return &compatCache{
		cpuMobo:  make(map[pairKey]bool),
		moboRAM:  make(map[pairKey]bool),
		psu:      make(map[trioKey]bool),
		cooler:   make(map[pairKey]bool),
		moboCase: make(map[pairKey]bool),
		storage:  make(map[pairKey]bool),
	}
}

func (c *compatCache) cpuMoboOK(cpu *parts.CPU, mobo *parts.Motherboard) bool {
	key := pairKey{cpu.ID, mobo.ID}
	if v, ok := c.cpuMobo[key]; ok {
		return v
	}
	v := CPUMotherboardCompatible(cpu, mobo)
	c.cpuMobo[key] = v
	return v
}

func (c *compatCache) moboRAMOK(mobo *parts.Motherboard, ram *parts.RAM) bool {
	key := pairKey{mobo.ID, ram.ID}
	if v, ok := c.moboRAM[key]; ok {
		return v
	}
	v := MotherboardRAMCompatible(mobo, ram)
	c.moboRAM[key] = v
	return v
}

func (c *compatCache) psuOK(psu *parts.PSU, cpu *parts.CPU, gpu *parts.GPU) bool {
	key := trioKey{psu.ID, cpu.ID, gpu.ID}
	if v, ok := c.psu[key]; ok {
		return v
	}
	v := PSUCompatible(psu, cpu, gpu)
	c.psu[key] = v
	return v
}

func (c *compatCache) coolerOK(cooler *parts.Cooler, cpu *parts.CPU) bool {
	key := pairKey{cooler.ID, cpu.ID}
	if v, ok := c.cooler[key]; ok {
		return v
	}
	v := CoolerCompatible(cooler, cpu)
	c.cooler[key] = v
	return v
}

func (c *compatCache) caseOK(mobo *parts.Motherboard, cs *parts.Case) bool {
	key := pairKey{mobo.ID, cs.ID}
	if v, ok := c.moboCase[key]; ok {
		return v
	}
	v := MotherboardCaseCompatible(mobo, cs)
	c.moboCase[key] = v
	return v
}

func (c *compatCache) storageOK(mobo *parts.Motherboard, s *parts.Storage) bool {
	key := pairKey{mobo.ID, s.ID}
	if v, ok := c.storage[key]; ok {
		return v
	}
	v := MotherboardStorageCompatible(mobo, s)
	c.storage[key] = v
	return v
}
