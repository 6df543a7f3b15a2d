package optimizer

import (
	"testing"

	"github.com/jsvensson/ntscjguess/internal/colorspace"
)

func seedError(pl colorspace.Pipeline, seed colorspace.Pixel8) float64 {
	return colorspace.Distance(pl.ToXYZ(seed), pl.GoalXYZ(seed))
}

func TestSeedNeverWorsened(t *testing.T) {
	tests := []struct {
		name string
		seed colorspace.Pixel8
	}{
		{"black", colorspace.Pixel8{R: 0, G: 0, B: 0}},
		{"white", colorspace.Pixel8{R: 255, G: 255, B: 255}},
		{"mid gray", colorspace.Pixel8{R: 128, G: 128, B: 128}},
		{"mixed", colorspace.Pixel8{R: 0x12, G: 0x34, B: 0x56}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := colorspace.Default()
			opt := &Optimizer{Pipeline: pl}
			res, err := opt.Run(tt.seed, pl.GoalXYZ(tt.seed))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if initial := seedError(pl, tt.seed); res.Error > initial {
				t.Errorf("final error %v worse than seed error %v", res.Error, initial)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 0x12, G: 0x34, B: 0x56}

	opt := &Optimizer{Pipeline: pl}
	first, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if first != second {
		t.Errorf("two runs differ: %+v vs %+v", first, second)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	pl := colorspace.Default()
	for _, seed := range []colorspace.Pixel8{
		{R: 0x12, G: 0x34, B: 0x56},
		{R: 10, G: 200, B: 30},
		{R: 0, G: 0, B: 0},
	} {
		serial := &Optimizer{Pipeline: pl}
		par := &Optimizer{Pipeline: pl, Parallel: true}

		want, err := serial.Run(seed, pl.GoalXYZ(seed))
		if err != nil {
			t.Fatalf("serial Run: %v", err)
		}
		got, err := par.Run(seed, pl.GoalXYZ(seed))
		if err != nil {
			t.Fatalf("parallel Run: %v", err)
		}
		if got != want {
			t.Errorf("seed %v: parallel %+v != serial %+v", seed, got, want)
		}
	}
}

func TestMidGrayConverges(t *testing.T) {
	// Grays pass through the gamut matrix almost unchanged (its rows sum to
	// ~1), so the seed is already optimal and the search stops after one
	// sweep.
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 0x80, G: 0x80, B: 0x80}

	opt := &Optimizer{Pipeline: pl}
	res, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Sweeps >= 100 {
		t.Errorf("took %d sweeps, want < 100", res.Sweeps)
	}
	if initial := seedError(pl, seed); res.Error > initial {
		t.Errorf("final error %v worse than seed error %v", res.Error, initial)
	}
}

func TestSearchImprovesError(t *testing.T) {
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 0x12, G: 0x34, B: 0x56}

	opt := &Optimizer{Pipeline: pl}
	res, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	initial := seedError(pl, seed)
	if res.Error >= initial {
		t.Errorf("final error %v did not improve on seed error %v", res.Error, initial)
	}
	if res.Sweeps >= 100 {
		t.Errorf("took %d sweeps, want < 100", res.Sweeps)
	}
	if res.Guess == seed {
		t.Errorf("guess did not move off the seed despite improving error")
	}
}

func TestSingleAxisImprovesError(t *testing.T) {
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 0x12, G: 0x34, B: 0x56}

	opt := &Optimizer{Pipeline: pl, SingleAxis: true}
	res, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if initial := seedError(pl, seed); res.Error >= initial {
		t.Errorf("final error %v did not improve on seed error %v", res.Error, initial)
	}
}

func TestSingleAxisTerminatesOnSaturated(t *testing.T) {
	// Pure red is out of the sRGB gamut after conversion, so the clipped
	// goal is hit exactly and no strict improvement exists.
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 255, G: 0, B: 0}

	opt := &Optimizer{Pipeline: pl, SingleAxis: true}
	res, err := opt.Run(seed, pl.GoalXYZ(seed))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Guess != seed {
		t.Errorf("guess = %v, want seed %v", res.Guess, seed)
	}
	if res.Sweeps != 1 {
		t.Errorf("sweeps = %d, want 1", res.Sweeps)
	}
}

func TestSweepCapSignalsNonConvergence(t *testing.T) {
	// With <= acceptance, saturated colors sit on a zero-error plateau the
	// search can wander indefinitely; the cap turns that into an error.
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 255, G: 0, B: 0}

	opt := &Optimizer{Pipeline: pl, MaxSweeps: 50}
	if _, err := opt.Run(seed, pl.GoalXYZ(seed)); err == nil {
		t.Error("expected non-convergence error, got nil")
	}
}

func TestNeighborsRespectBounds(t *testing.T) {
	tests := []struct {
		name   string
		center colorspace.Pixel8
		count  int
	}{
		{"interior", colorspace.Pixel8{R: 128, G: 128, B: 128}, 26},
		{"corner low", colorspace.Pixel8{R: 0, G: 0, B: 0}, 7},
		{"corner high", colorspace.Pixel8{R: 255, G: 255, B: 255}, 7},
		{"one face", colorspace.Pixel8{R: 0, G: 128, B: 128}, 17},
	}

	opt := &Optimizer{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := opt.neighbors(tt.center, offset{})
			if len(cands) != tt.count {
				t.Errorf("got %d candidates, want %d", len(cands), tt.count)
			}
			for _, c := range cands {
				wantR := int(tt.center.R) + c.off.r
				wantG := int(tt.center.G) + c.off.g
				wantB := int(tt.center.B) + c.off.b
				if int(c.pix.R) != wantR || int(c.pix.G) != wantG || int(c.pix.B) != wantB {
					t.Errorf("candidate %v does not match center %v plus offset %v", c.pix, tt.center, c.off)
				}
			}
		})
	}
}

func TestNeighborsExcludeForbidden(t *testing.T) {
	opt := &Optimizer{}
	forbidden := offset{0, 1, 1}
	for _, c := range opt.neighbors(colorspace.Pixel8{R: 128, G: 128, B: 128}, forbidden) {
		if c.off == forbidden {
			t.Fatalf("forbidden offset %v was enumerated", forbidden)
		}
	}
}

func TestSingleAxisNeighborsAtCorner(t *testing.T) {
	opt := &Optimizer{SingleAxis: true}
	cands := opt.neighbors(colorspace.Pixel8{R: 0, G: 0, B: 0}, offset{})
	if len(cands) != 3 {
		t.Errorf("got %d candidates, want 3", len(cands))
	}
	for _, c := range cands {
		if c.off.r < 0 || c.off.g < 0 || c.off.b < 0 {
			t.Errorf("candidate offset %v would leave the lattice", c.off)
		}
	}
}

func TestMonotoneConvergence(t *testing.T) {
	// Re-run the sweep loop manually to observe the per-sweep best error:
	// with <= acceptance it must never increase.
	pl := colorspace.Default()
	seed := colorspace.Pixel8{R: 10, G: 200, B: 30}
	goal := pl.GoalXYZ(seed)

	opt := &Optimizer{Pipeline: pl}
	best := seed
	bestErr := colorspace.Distance(pl.ToXYZ(seed), goal)
	var forbidden offset

	for sweep := 0; sweep < DefaultMaxSweeps; sweep++ {
		prevErr := bestErr
		cands := opt.neighbors(best, forbidden)
		errs, err := opt.score(cands, goal)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		accepted := false
		var lastMove offset
		for i, c := range cands {
			if errs[i] <= bestErr {
				best = c.pix
				bestErr = errs[i]
				lastMove = c.off
				accepted = true
			}
		}
		if bestErr > prevErr {
			t.Fatalf("best error increased from %v to %v", prevErr, bestErr)
		}
		if !accepted {
			return
		}
		forbidden = lastMove.negate()
	}
	t.Fatal("search did not terminate")
}
