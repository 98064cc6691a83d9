package engine

import (
	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// ramScoreCap bounds the RAM contribution to the composite score so memory
// benchmarks cannot dominate the CPU/GPU signal.
const ramScoreCap = 130

// ResolutionWeights shift the composite score toward the component that
// matters most at a given render target: CPU-heavy at 1080p, GPU-heavy at 4k.
type ResolutionWeights struct {
	CPU float64
	GPU float64
}

var resolutionWeights = map[string]ResolutionWeights{
	Resolution1080p: {CPU: 1.2, GPU: 0.9},
	Resolution1440p: {CPU: 1.0, GPU: 1.0},
	Resolution4K:    {CPU: 0.7, GPU: 1.3},
}

// WeightsFor returns the scoring weights for a resolution, defaulting to the
// balanced 1440p weights for anything unrecognized.
func WeightsFor(resolution string) ResolutionWeights {
	if w, ok := resolutionWeights[resolution]; ok {
		return w
	}
	return resolutionWeights[Resolution1440p]
}

// CPUScore returns the mode-appropriate CPU benchmark, 0 when absent.
func CPUScore(cpu *parts.CPU, mode string) float64 {
	if mode == ModeWorkstation {
		return deref(cpu.WorkstationScore)
	}
	return deref(cpu.BenchScore)
}

// GPUScore returns the mode-appropriate GPU benchmark, 0 when absent.
func GPUScore(gpu *parts.GPU, mode string) float64 {
	if mode == ModeWorkstation {
		return deref(gpu.WorkstationScore)
	}
	return deref(gpu.BenchScore)
}

// RAMScore returns the memory benchmark, 0 when absent.
func RAMScore(ram *parts.RAM) float64 {
	return deref(ram.Benchmark)
}

// TrioScore is the composite score for a CPU/GPU/RAM combination:
// resolution-weighted CPU and GPU benchmarks plus the capped RAM benchmark.
func TrioScore(cpu *parts.CPU, gpu *parts.GPU, ram *parts.RAM, mode, resolution string) float64 {
	w := WeightsFor(resolution)
	ramComponent := RAMScore(ram)
	if ramComponent > ramScoreCap {
		ramComponent = ramScoreCap
	}
	return CPUScore(cpu, mode)*w.CPU + GPUScore(gpu, mode)*w.GPU + ramComponent
}

// Bottleneck classifies which side limits frame rate for a CPU/GPU pair and
// how severely. The raw percentage is halved before being reported: the
// product intentionally understates severity for user-facing display, so
// callers must not double the value back.
func Bottleneck(cpu *parts.CPU, gpu *parts.GPU, mode, resolution string) (BottleneckType, float64) {
	var cpuFPS, gpuFPS float64
	if mode == ModeGaming {
		cpuFPS, gpuFPS = fpsSides(cpu, gpu, mode, resolution, referenceGame)
	}
	if cpuFPS <= 0 || gpuFPS <= 0 {
		// Fall back to resolution-weighted scores when FPS estimation has
		// nothing to work with (workstation mode, or missing benchmarks).
		w := WeightsFor(resolution)
		cpuFPS = CPUScore(cpu, mode) * w.CPU
		gpuFPS = GPUScore(gpu, mode) * w.GPU
	}
	if cpuFPS <= 0 || gpuFPS <= 0 {
		return BottleneckUnknown, 0
	}
	ratio := cpuFPS / gpuFPS
	if ratio < 1 {
		return BottleneckCPU, (1 - ratio) * 100 / 2
	}
	return BottleneckGPU, (1 - 1/ratio) * 100 / 2
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
