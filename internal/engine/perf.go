package engine

import (
	"github.com/Ruon90/PCBuildMate/internal/parts"
)

// Derived performance estimates: per-game FPS decomposition and the
// workstation render-time estimate. Both scale fixed baseline measurements
// by the ratio of the part's benchmark to the nearest reference tier.

// refPoint anchors a benchmark score to a measured baseline FPS at 1080p.
type refPoint struct {
	score float64
	fps   float64
}

// gameBaseline carries low/mid/high reference points for each side of the
// FPS decomposition.
type gameBaseline struct {
	cpu [3]refPoint
	gpu [3]refPoint
}

// referenceGame is the representative workload used for bottleneck
// classification.
const referenceGame = "Cyberpunk 2077"

var gameBaselines = map[string]gameBaseline{
	"Cyberpunk 2077": {
		cpu: [3]refPoint{{60, 70}, {90, 105}, {120, 140}},
		gpu: [3]refPoint{{80, 60}, {140, 100}, {200, 150}},
	},
	"Fortnite": {
		cpu: [3]refPoint{{60, 140}, {90, 200}, {120, 260}},
		gpu: [3]refPoint{{80, 120}, {140, 200}, {200, 300}},
	},
	"Counter-Strike 2": {
		cpu: [3]refPoint{{60, 200}, {90, 300}, {120, 400}},
		gpu: [3]refPoint{{80, 180}, {140, 280}, {200, 420}},
	},
}

var resolutionFactors = map[string]float64{
	Resolution1080p: 1.0,
	Resolution1440p: 0.75,
	Resolution4K:    0.5,
}

func resolutionFactor(resolution string) float64 {
	if f, ok := resolutionFactors[resolution]; ok {
		return f
	}
	return resolutionFactors[Resolution1440p]
}

// nearestRef picks the reference tier whose score is closest to the actual
// benchmark, so weak parts scale off the low anchor and strong parts off the
// high one.
func nearestRef(score float64, refs [3]refPoint) refPoint {
	best := refs[0]
	bestDist := abs(score - refs[0].score)
	for _, r := range refs[1:] {
		if d := abs(score - r.score); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// fpsSides returns the CPU-bound and GPU-bound FPS estimates for one game.
// A side with no benchmark data contributes 0.
func fpsSides(cpu *parts.CPU, gpu *parts.GPU, mode, resolution, game string) (float64, float64) {
	baseline, ok := gameBaselines[game]
	if !ok {
		return 0, 0
	}
	factor := resolutionFactor(resolution)

	cpuScore := CPUScore(cpu, mode)
	gpuScore := GPUScore(gpu, mode)

	var cpuFPS, gpuFPS float64
	if cpuScore > 0 {
		ref := nearestRef(cpuScore, baseline.cpu)
		cpuFPS = ref.fps * (cpuScore / ref.score) * factor
	}
	if gpuScore > 0 {
		ref := nearestRef(gpuScore, baseline.gpu)
		gpuFPS = ref.fps * (gpuScore / ref.score) * factor
	}
	return cpuFPS, gpuFPS
}

// EstimateFPS computes the per-game FPS breakdown for a CPU/GPU pair.
// Overall FPS for a game is the minimum of the two sides; games where
// neither side has data are omitted.
func EstimateFPS(cpu *parts.CPU, gpu *parts.GPU, mode, resolution string) map[string]GameFPS {
	out := make(map[string]GameFPS, len(gameBaselines))
	for game := range gameBaselines {
		cpuFPS, gpuFPS := fpsSides(cpu, gpu, mode, resolution, game)
		if cpuFPS <= 0 && gpuFPS <= 0 {
			continue
		}
		overall := cpuFPS
		if gpuFPS < overall || overall <= 0 {
			overall = gpuFPS
		}
		out[game] = GameFPS{
			CPU:     round1(cpuFPS),
			GPU:     round1(gpuFPS),
			Overall: round1(overall),
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Render-time baselines: a reference scene that takes renderBaselineMinutes
// on a machine with the reference CPU and GPU workstation scores.
const (
	renderBaselineMinutes  = 10.0
	renderBaselineCPUScore = 1000.0
	renderBaselineGPUScore = 3000.0
)

// EstimateRenderTime models workstation render time as bounded by whichever
// component is relatively weaker against the baseline machine. Returns 0
// when neither side has a workstation benchmark.
func EstimateRenderTime(cpu *parts.CPU, gpu *parts.GPU) float64 {
	cpuScore := CPUScore(cpu, ModeWorkstation)
	gpuScore := GPUScore(gpu, ModeWorkstation)

	var cpuTime, gpuTime float64
	if cpuScore > 0 {
		cpuTime = renderBaselineMinutes * renderBaselineCPUScore / cpuScore
	}
	if gpuScore > 0 {
		gpuTime = renderBaselineMinutes * renderBaselineGPUScore / gpuScore
	}
	if cpuTime > gpuTime {
		return round1(cpuTime)
	}
	return round1(gpuTime)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
