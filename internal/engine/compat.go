package engine

import (
	"math"
	"regexp"
	"strings"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// HeadroomRatio is the safety margin added to PSU wattage requirements above
// raw CPU+GPU power draw.
const HeadroomRatio = 0.30

// ddr5FrequencyFloor is the MHz threshold used to infer a DDR generation
// when a RAM kit or board does not declare one.
const ddr5FrequencyFloor = 4800

// Catalog data is incomplete in places. Every predicate in this file is
// permissive when an attribute needed for a check is missing: a pair is
// only rejected on positive evidence of a mismatch. Tightening this would
// silently drop valid builds from sparse catalogs.

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeToken lowercases, strips the word "socket" and removes all
// non-alphanumeric characters, so "Socket AM5" and "am5" compare equal.
func normalizeToken(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "socket", "")
	return nonAlnum.ReplaceAllString(s, "")
}

// unlockedIntelSKU reports whether a CPU is an Intel-style overclockable
// part: model suffix K, KF or KS after the numeric portion.
var unlockedSuffix = regexp.MustCompile(`\d+k[fs]?$`)

func unlockedIntelSKU(cpu *parts.CPU) bool {
	if !strings.Contains(strings.ToLower(cpu.Brand), "intel") {
		return false
	}
	model := normalizeToken(cpu.Model)
	if model == "" {
		model = normalizeToken(cpu.Name)
	}
	return unlockedSuffix.MatchString(model)
}

// overclockChipset matches Z-series chipset markers (z690, z790, ...) in a
// board name or slug.
var overclockChipset = regexp.MustCompile(`z\d`)

func boardSupportsOverclock(mobo *parts.Motherboard) bool {
	name := normalizeToken(mobo.Name)
	slug := normalizeToken(mobo.Slug)
	return overclockChipset.MatchString(name) || overclockChipset.MatchString(slug)
}

// CPUMotherboardCompatible checks socket fit, with an extra rule for
// unlocked Intel SKUs: those require a Z-series chipset board even when the
// sockets match. Missing socket data on either side is permissive.
func CPUMotherboardCompatible(cpu *parts.CPU, mobo *parts.Motherboard) bool {
	cpuSocket := normalizeToken(cpu.Socket)
	moboSocket := normalizeToken(mobo.Socket)
	if cpuSocket != "" && moboSocket != "" {
		if !strings.Contains(cpuSocket, moboSocket) && !strings.Contains(moboSocket, cpuSocket) {
			return false
		}
	}
	if unlockedIntelSKU(cpu) && !boardSupportsOverclock(mobo) {
		return false
	}
	return true
}

// inferDDRGeneration derives a generation string from a frequency or max
// supported speed when the catalog does not declare one. Returns "" when
// there is nothing to infer from.
func inferDDRGeneration(mhz float64) string {
	if mhz <= 0 {
		return ""
	}
	if mhz >= ddr5FrequencyFloor {
		return "ddr5"
	}
	return "ddr4"
}

// MotherboardRAMCompatible matches DDR generations (declared or inferred
// from speed) and, on a generation match, requires the RAM frequency to stay
// at or under the board's max DDR speed when the board reports one. With no
// generation evidence on either side the pair passes.
func MotherboardRAMCompatible(mobo *parts.Motherboard, ram *parts.RAM) bool {
	moboGen := normalizeToken(mobo.DDRVersion)
	ramGen := normalizeToken(ram.DDRGeneration)

	ramFreq := 0.0
	if ram.FrequencyMHz != nil {
		ramFreq = float64(*ram.FrequencyMHz)
	}
	moboSpeed := 0.0
	if mobo.DDRMaxSpeed != nil {
		moboSpeed = *mobo.DDRMaxSpeed
	}

	if moboGen == "" {
		moboGen = inferDDRGeneration(moboSpeed)
	}
	if ramGen == "" {
		ramGen = inferDDRGeneration(ramFreq)
	}
	if moboGen == "" || ramGen == "" {
		// No generation evidence on at least one side.
		return true
	}
	if !strings.Contains(moboGen, ramGen) && !strings.Contains(ramGen, moboGen) {
		return false
	}
	if moboSpeed > 0 && ramFreq > moboSpeed {
		return false
	}
	return true
}

// MotherboardStorageCompatible requires NVMe support on the board for
// NVMe/PCIe/M.2 drives; an unset support indicator counts as supporting.
// SATA drives always fit.
func MotherboardStorageCompatible(mobo *parts.Motherboard, storage *parts.Storage) bool {
	iface := strings.ToLower(storage.Interface)
	needsNVMe := strings.Contains(iface, "nvme") ||
		strings.Contains(iface, "pcie") ||
		strings.Contains(iface, "m.2") ||
		strings.Contains(iface, "m2")
	if !needsNVMe {
		return true
	}
	support := strings.ToLower(strings.TrimSpace(mobo.NVMeSupport))
	switch support {
	case "", "true", "yes", "1":
		return true
	}
	return false
}

// MotherboardCaseCompatible applies the form-factor lattice:
//
//	mini-ITX/ITX boards fit any case
//	microATX boards fit microATX or ATX cases, not mini/ITX-only cases
//	ATX boards fit only cases labelled ATX/tower/mid/full, never micro/mini
//
// plus a substring match in either direction guarded so an ATX board never
// matches through the "atx" inside "microatx". Missing data is permissive.
func MotherboardCaseCompatible(mobo *parts.Motherboard, c *parts.Case) bool {
	moboFF := normalizeToken(mobo.FormFactor)
	caseFF := normalizeToken(c.CaseType)
	if moboFF == "" || caseFF == "" {
		return true
	}

	caseIsSmall := strings.Contains(caseFF, "micro") || strings.Contains(caseFF, "mini") ||
		strings.Contains(caseFF, "itx")

	switch {
	case strings.Contains(moboFF, "mini") || strings.Contains(moboFF, "itx"):
		return true
	case strings.Contains(moboFF, "micro"):
		if strings.Contains(caseFF, "micro") {
			return true
		}
		if strings.Contains(caseFF, "mini") || strings.Contains(caseFF, "itx") {
			return false
		}
		return strings.Contains(caseFF, "atx") || strings.Contains(caseFF, "tower") ||
			strings.Contains(caseFF, "mid") || strings.Contains(caseFF, "full")
	default: // ATX and larger
		if caseIsSmall {
			return false
		}
		return strings.Contains(caseFF, "atx") || strings.Contains(caseFF, "tower") ||
			strings.Contains(caseFF, "mid") || strings.Contains(caseFF, "full") ||
			strings.Contains(caseFF, moboFF) || strings.Contains(moboFF, caseFF)
	}
}

// RequiredWattage is the PSU sizing rule: CPU power draw (overclocked, then
// TDP, then 0) plus GPU TDP, with the headroom margin applied and rounded up.
func RequiredWattage(cpu *parts.CPU, gpu *parts.GPU) int {
	draw := cpu.PowerDraw()
	if gpu.TDP != nil && *gpu.TDP > 0 {
		draw += float64(*gpu.TDP)
	}
	return int(math.Ceil(draw * (1 + HeadroomRatio)))
}

// PSUCompatible reports whether the PSU's rated wattage covers the headroom
// requirement for the CPU/GPU pair. A PSU without a wattage rating only
// passes when nothing draws power.
func PSUCompatible(psu *parts.PSU, cpu *parts.CPU, gpu *parts.GPU) bool {
	required := RequiredWattage(cpu, gpu)
	wattage := 0
	if psu.Wattage != nil {
		wattage = *psu.Wattage
	}
	return wattage >= required
}

// CoolerCompatible requires the cooler's rated thermal throughput to cover
// the CPU's power draw. A CPU with no power data passes any cooler.
func CoolerCompatible(cooler *parts.Cooler, cpu *parts.CPU) bool {
	throughput := 0.0
	if cooler.PowerThroughput != nil {
		throughput = *cooler.PowerThroughput
	}
	return throughput >= cpu.PowerDraw()
}
