package engine

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/Ruon90/PCBuildMate/internal/parts"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testCatalog returns a single-part catalog where every pair is compatible
// and the prices sum to 950.
func testCatalog() *parts.Catalog {
	return &parts.Catalog{
		CPUs: []*parts.CPU{{
			ID: uuid.New(), Brand: "AMD", Model: "Ryzen 5 5600", Socket: "AM4",
			Price: fp(200), BenchScore: fp(100), WorkstationScore: fp(80),
			OverclockedPower: ip(95),
		}},
		GPUs: []*parts.GPU{{
			ID: uuid.New(), Name: "RTX 4060",
			Price: fp(300), BenchScore: fp(150), WorkstationScore: fp(120),
			TDP: ip(200),
		}},
		Motherboards: []*parts.Motherboard{{
			ID: uuid.New(), Name: "MSI B550 Tomahawk", Socket: "AM4",
			Price: fp(100), FormFactor: "ATX", DDRVersion: "DDR4",
			DDRMaxSpeed: fp(3200), NVMeSupport: "True",
		}},
		RAMs: []*parts.RAM{{
			ID: uuid.New(), Name: "16GB DDR4-3000",
			Price: fp(80), DDRGeneration: "DDR4", FrequencyMHz: ip(3000),
			Benchmark: fp(50),
		}},
		Storages: []*parts.Storage{{
			ID: uuid.New(), Name: "500GB NVMe",
			Price: fp(60), CapacityGB: ip(500), Interface: "NVMe",
		}},
		PSUs: []*parts.PSU{{
			ID: uuid.New(), Name: "600W Gold",
			Price: fp(90), Wattage: ip(600), Efficiency: "80+ Gold",
		}},
		Coolers: []*parts.Cooler{{
			ID: uuid.New(), Name: "Tower Cooler",
			Price: fp(50), PowerThroughput: fp(120),
		}},
		Cases: []*parts.Case{{
			ID: uuid.New(), Name: "Mid Tower",
			Price: fp(70), CaseType: "ATX Mid Tower",
		}},
	}
}

func TestSearchInvalidRequests(t *testing.T) {
	cat := testCatalog()
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"zero budget", Request{Budget: 0, Mode: ModeGaming, Resolution: Resolution1080p}, ErrInvalidBudget},
		{"negative budget", Request{Budget: -100, Mode: ModeGaming, Resolution: Resolution1080p}, ErrInvalidBudget},
		{"bad mode", Request{Budget: 1000, Mode: "mining", Resolution: Resolution1080p}, ErrInvalidMode},
		{"bad resolution", Request{Budget: 1000, Mode: ModeGaming, Resolution: "720p"}, ErrInvalidResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(tt.req, cat, discardLogger())
			if err != tt.wantErr {
				t.Errorf("got err %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchSinglePartCatalog(t *testing.T) {
	cat := testCatalog()
	req := Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}

	result, err := Search(req, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best == nil {
		t.Fatalf("expected a build, got none (diagnostics: %+v)", result.Diagnostics)
	}

	best := result.Best
	if best.TotalPrice != 950 {
		t.Errorf("total price = %v, want 950", best.TotalPrice)
	}
	if best.TotalPrice > req.Budget {
		t.Errorf("total price %v exceeds budget %v", best.TotalPrice, req.Budget)
	}
	if best.CPU.ID != cat.CPUs[0].ID || best.GPU.ID != cat.GPUs[0].ID {
		t.Error("expected the only available parts to be selected")
	}
	// 100*1.2 + 150*0.9 + 50 = 305
	if best.TotalScore != 305 {
		t.Errorf("total score = %v, want 305", best.TotalScore)
	}
	if len(best.FPS) == 0 {
		t.Error("expected FPS breakdown in gaming mode")
	}
	if best.RenderTimeMin != 0 {
		t.Error("did not expect render time in gaming mode")
	}
	if len(result.Alternatives) != 1 {
		t.Errorf("expected 1 alternative, got %d", len(result.Alternatives))
	}
}

func TestSearchWorkstationMode(t *testing.T) {
	cat := testCatalog()
	req := Request{Budget: 1000, Mode: ModeWorkstation, Resolution: Resolution1440p}

	result, err := Search(req, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best == nil {
		t.Fatal("expected a build")
	}
	if result.Best.RenderTimeMin <= 0 {
		t.Error("expected a render time estimate in workstation mode")
	}
	if result.Best.FPS != nil {
		t.Error("did not expect FPS breakdown in workstation mode")
	}
}

func TestSearchNoSocketMatch(t *testing.T) {
	cat := testCatalog()
	cat.CPUs[0].Socket = "AM5"
	cat.Motherboards[0].Socket = "LGA1700"

	result, err := Search(Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best != nil {
		t.Fatal("expected no feasible build with mismatched sockets")
	}
	if result.Diagnostics.DominantFailure() != "fail_mobo" {
		t.Errorf("dominant failure = %q, want fail_mobo (diagnostics: %+v)",
			result.Diagnostics.DominantFailure(), result.Diagnostics)
	}
}

func TestSearchUnlockedIntelNeedsZChipset(t *testing.T) {
	cat := testCatalog()
	cat.CPUs[0].Brand = "Intel"
	cat.CPUs[0].Model = "i7-13700K"
	cat.CPUs[0].Socket = "LGA1700"
	cat.Motherboards[0].Socket = "LGA1700"
	cat.Motherboards[0].Name = "MSI B660M Pro"

	result, err := Search(Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best != nil {
		t.Fatal("expected rejection: unlocked SKU on a non-Z board despite matching sockets")
	}
	if result.Diagnostics.FailMobo == 0 {
		t.Error("expected fail_mobo rejections")
	}

	// Same catalog with a Z-series board succeeds.
	cat.Motherboards[0].Name = "ASUS Z690 Prime"
	result, err = Search(Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best == nil {
		t.Error("expected a build on a Z-series board")
	}
}

func TestSearchBudgetInvariantAndPSUSizing(t *testing.T) {
	cat := testCatalog()
	// Add a second, pricier GPU so several candidates exist.
	cat.GPUs = append(cat.GPUs, &parts.GPU{
		ID: uuid.New(), Name: "RTX 4070",
		Price: fp(380), BenchScore: fp(220), TDP: ip(220),
	})

	req := Request{Budget: 1100, Mode: ModeGaming, Resolution: Resolution1080p}
	result, err := Search(req, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Alternatives) == 0 {
		t.Fatal("expected candidates")
	}
	for i, alt := range result.Alternatives {
		if alt.TotalPrice > req.Budget {
			t.Errorf("alternative %d: price %v exceeds budget", i, alt.TotalPrice)
		}
		required := float64(RequiredWattage(alt.CPU, alt.GPU))
		if float64(*alt.PSU.Wattage) < required {
			t.Errorf("alternative %d: psu %dW below required %vW", i, *alt.PSU.Wattage, required)
		}
		// Every returned candidate is internally consistent.
		if !CPUMotherboardCompatible(alt.CPU, alt.Motherboard) ||
			!MotherboardRAMCompatible(alt.Motherboard, alt.RAM) ||
			!MotherboardStorageCompatible(alt.Motherboard, alt.Storage) ||
			!MotherboardCaseCompatible(alt.Motherboard, alt.Case) ||
			!CoolerCompatible(alt.Cooler, alt.CPU) {
			t.Errorf("alternative %d: pairwise compatibility violated", i)
		}
	}
}

func TestSearchDeterminism(t *testing.T) {
	cat := testCatalog()
	for i := 0; i < 5; i++ {
		cat.GPUs = append(cat.GPUs, &parts.GPU{
			ID: uuid.New(), Name: fmt.Sprintf("gpu-%d", i),
			Price: fp(250 + float64(i)*10), BenchScore: fp(120 + float64(i)*5), TDP: ip(180),
		})
		cat.RAMs = append(cat.RAMs, &parts.RAM{
			ID: uuid.New(), Name: fmt.Sprintf("ram-%d", i),
			Price: fp(70 + float64(i)), DDRGeneration: "DDR4",
			FrequencyMHz: ip(3200), Benchmark: fp(45 + float64(i)),
		})
	}
	req := Request{ID: uuid.New(), Budget: 1200, Mode: ModeGaming, Resolution: Resolution1440p}

	first, err := Search(req, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Search(req, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Alternatives) != len(second.Alternatives) {
		t.Fatalf("candidate counts differ: %d vs %d", len(first.Alternatives), len(second.Alternatives))
	}
	if first.Best.CPU.ID != second.Best.CPU.ID ||
		first.Best.GPU.ID != second.Best.GPU.ID ||
		first.Best.RAM.ID != second.Best.RAM.ID {
		t.Error("winning candidates differ across identical runs")
	}
	for i := range first.Alternatives {
		a, b := first.Alternatives[i], second.Alternatives[i]
		if a.CPU.ID != b.CPU.ID || a.GPU.ID != b.GPU.ID || a.RAM.ID != b.RAM.ID {
			t.Errorf("alternative %d differs across identical runs", i)
		}
	}
}

func TestSearchBudgetMonotonicity(t *testing.T) {
	cat := testCatalog()
	cat.GPUs = append(cat.GPUs, &parts.GPU{
		ID: uuid.New(), Name: "RTX 4080",
		Price: fp(700), BenchScore: fp(320), TDP: ip(250),
	})

	var lastScore float64
	for _, budget := range []float64{900, 1000, 1400, 2000, 3000} {
		result, err := Search(Request{Budget: budget, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
		if err != nil {
			t.Fatal(err)
		}
		score := 0.0
		if result.Best != nil {
			score = result.Best.TotalScore
		}
		if score < lastScore {
			t.Errorf("budget %v: best score %v dropped below %v at lower budget", budget, score, lastScore)
		}
		lastScore = score
	}
}

func TestSearchPermissiveOnMissingSockets(t *testing.T) {
	cat := testCatalog()
	cat.CPUs[0].Socket = ""

	result, err := Search(Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best == nil {
		t.Error("missing socket data must not reject the pair")
	}
}

func TestSearchDiversityCap(t *testing.T) {
	cat := testCatalog()
	// One CPU, many GPUs and RAM kits: without the cap this CPU would
	// produce dozens of candidates.
	for i := 0; i < 6; i++ {
		cat.GPUs = append(cat.GPUs, &parts.GPU{
			ID: uuid.New(), Name: fmt.Sprintf("gpu-%d", i),
			Price: fp(260 + float64(i)*5), BenchScore: fp(130 + float64(i)), TDP: ip(180),
		})
		cat.RAMs = append(cat.RAMs, &parts.RAM{
			ID: uuid.New(), Name: fmt.Sprintf("ram-%d", i),
			Price: fp(80 + float64(i)), DDRGeneration: "DDR4",
			FrequencyMHz: ip(3000), Benchmark: fp(40 + float64(i)),
		})
	}

	result, err := Search(Request{Budget: 1500, Mode: ModeGaming, Resolution: Resolution1080p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	perCPU := make(map[uuid.UUID]int)
	for _, alt := range result.Alternatives {
		perCPU[alt.CPU.ID]++
	}
	for id, n := range perCPU {
		if n > perCPUDiversityCap {
			t.Errorf("cpu %s has %d candidates, cap is %d", id, n, perCPUDiversityCap)
		}
	}
}

func TestSearchSecondPassExploresDDR4(t *testing.T) {
	cat := testCatalog()
	// Board with no declared memory constraints accepts both generations.
	cat.Motherboards[0].DDRVersion = ""
	cat.Motherboards[0].DDRMaxSpeed = nil

	// Enough DDR5 kits to push every DDR4 kit off the truncated RAM list.
	cat.RAMs = nil
	for i := 0; i < 12; i++ {
		cat.RAMs = append(cat.RAMs, &parts.RAM{
			ID: uuid.New(), Name: fmt.Sprintf("ddr5-%d", i),
			Price: fp(120 + float64(i)), DDRGeneration: "DDR5",
			FrequencyMHz: ip(5600 + i*100), Benchmark: fp(90 + float64(i)),
		})
	}
	cat.RAMs = append(cat.RAMs, &parts.RAM{
		ID: uuid.New(), Name: "ddr4-kit",
		Price: fp(60), DDRGeneration: "DDR4",
		FrequencyMHz: ip(3200), Benchmark: fp(50),
	})

	result, err := Search(Request{Budget: 2000, Mode: ModeGaming, Resolution: Resolution1440p}, cat, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Diagnostics.SecondPassRun {
		t.Fatal("expected the DDR4 second pass to run")
	}
	foundDDR4 := false
	for _, alt := range result.Alternatives {
		if ramGeneration(alt.RAM) == "ddr4" {
			foundDDR4 = true
			break
		}
	}
	if !foundDDR4 {
		t.Error("expected a DDR4 candidate from the second pass")
	}
}

func TestSearchEmptyCatalog(t *testing.T) {
	result, err := Search(Request{Budget: 1000, Mode: ModeGaming, Resolution: Resolution1080p}, &parts.Catalog{}, discardLogger())
	if err != nil {
		t.Fatal(err)
	}
	if result.Best != nil {
		t.Error("expected no build from an empty catalog")
	}
	if result.Alternatives == nil || len(result.Alternatives) != 0 {
		t.Error("expected an empty, non-nil alternatives list")
	}
}
