// Package parts defines the typed hardware catalog records consumed by the
// build engine. Every field that the upstream data pipeline may leave blank
// is a pointer; nil means "unknown" and downstream code applies documented
// defaults (usually zero, or permissive compatibility).
package parts

import (
	"github.com/google/uuid"
)

// Category identifies one of the eight part slots in a build.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCooler      Category = "cooler"
	CategoryCase        Category = "case"
)

// CPU is a processor catalog record.
type CPU struct {
	ID     uuid.UUID `json:"id"`
	Brand  string    `json:"brand,omitempty"`
	Model  string    `json:"model,omitempty"`
	Name   string    `json:"name,omitempty"`
	Socket string    `json:"socket,omitempty"`
	Price  *float64  `json:"price,omitempty"`

	CoreCount   *int     `json:"core_count,omitempty"`
	ThreadCount *int     `json:"thread_count,omitempty"`
	CoreClock   *float64 `json:"core_clock,omitempty"`
	BoostClock  *float64 `json:"boost_clock,omitempty"`

	TDP              *int `json:"tdp,omitempty"`
	OverclockedPower *int `json:"power_consumption_overclocked,omitempty"`

	BenchScore       *float64 `json:"benchmark_score,omitempty"`
	WorkstationScore *float64 `json:"workstation_score,omitempty"`
}

// PowerDraw returns the wattage used for PSU and cooler sizing:
// overclocked draw when known, else TDP, else 0.
func (c *CPU) PowerDraw() float64 {
	if c.OverclockedPower != nil && *c.OverclockedPower > 0 {
		return float64(*c.OverclockedPower)
	}
	if c.TDP != nil && *c.TDP > 0 {
		return float64(*c.TDP)
	}
	return 0
}

// GPU is a graphics card catalog record.
type GPU struct {
	ID    uuid.UUID `json:"id"`
	Brand string    `json:"brand,omitempty"`
	Model string    `json:"model,omitempty"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	MemoryGB *int `json:"memory_gb,omitempty"`
	TDP      *int `json:"tdp,omitempty"`

	BenchScore       *float64 `json:"benchmark_score,omitempty"`
	WorkstationScore *float64 `json:"workstation_score,omitempty"`
}

// Motherboard is a motherboard catalog record.
type Motherboard struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name,omitempty"`
	Slug   string    `json:"slug,omitempty"`
	Socket string    `json:"socket,omitempty"`
	Price  *float64  `json:"price,omitempty"`

	FormFactor  string   `json:"form_factor,omitempty"`
	DDRVersion  string   `json:"ddr_version,omitempty"`
	DDRMaxSpeed *float64 `json:"ddr_max_speed,omitempty"`
	NVMeSupport string   `json:"nvme_support,omitempty"`
	MemorySlots *int     `json:"memory_slots,omitempty"`
}

// RAM is a memory kit catalog record.
type RAM struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	DDRGeneration string   `json:"ddr_generation,omitempty"`
	FrequencyMHz  *int     `json:"frequency_mhz,omitempty"`
	CapacityGB    *int     `json:"capacity_gb,omitempty"`
	Modules       *int     `json:"modules,omitempty"`
	Benchmark     *float64 `json:"benchmark,omitempty"`
}

// Storage is a drive catalog record.
type Storage struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	CapacityGB *int   `json:"capacity_gb,omitempty"`
	Type       string `json:"storage_type,omitempty"`
	Interface  string `json:"interface,omitempty"`
}

// PSU is a power supply catalog record.
type PSU struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	Wattage    *int   `json:"wattage,omitempty"`
	Efficiency string `json:"efficiency,omitempty"`
	Modular    string `json:"modular,omitempty"`
}

// Cooler is a CPU cooler catalog record.
type Cooler struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	Liquid          *bool    `json:"liquid,omitempty"`
	PowerThroughput *float64 `json:"power_throughput,omitempty"`
}

// Case is a chassis catalog record.
type Case struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Price *float64  `json:"price,omitempty"`

	CaseType string `json:"case_type,omitempty"`
}

// Catalog bundles the candidate parts for one search. The engine treats it
// as read-only; callers may share one Catalog across concurrent searches.
type Catalog struct {
	CPUs         []*CPU         `json:"cpus"`
	GPUs         []*GPU         `json:"gpus"`
	Motherboards []*Motherboard `json:"motherboards"`
	RAMs         []*RAM         `json:"rams"`
	Storages     []*Storage     `json:"storages"`
	PSUs         []*PSU         `json:"psus"`
	Coolers      []*Cooler      `json:"coolers"`
	Cases        []*Case        `json:"cases"`
}

// Price helpers: nil or non-positive prices mean the part is not purchasable
// and is dropped during prefiltering.

func PriceOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func HasValidPrice(p *float64) bool {
	return p != nil && *p > 0
}
