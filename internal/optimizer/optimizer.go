// Package optimizer finds the 8-bit NTSC-J color whose converted XYZ
// coordinates land closest to a goal, by discrete hill climbing on the RGB
// lattice. The objective is the composition of two piecewise-smooth
// monotonic-ish transforms, so it is expected (not proven) to be locally
// unimodal around the true pre-image; local search beats scanning all 16.7M
// lattice points.
package optimizer

import (
	"fmt"

	"github.com/jsvensson/ntscjguess/internal/colorspace"
	"github.com/kovidgoyal/go-parallel"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("optimizer")

// DefaultMaxSweeps caps the search. Convergence takes a few dozen sweeps in
// practice; the cap only trips when tie acceptance wanders a zero-error
// plateau, which happens for targets outside the sRGB gamut.
const DefaultMaxSweeps = 4096

// Optimizer is a discrete local search over the 8-bit RGB lattice.
type Optimizer struct {
	// Pipeline scores candidates; it is the objective function oracle.
	Pipeline colorspace.Pipeline

	// SingleAxis restricts moves to the 6 axis-aligned unit steps and
	// accepts only strict improvements. The default is the full 26-direction
	// Moore neighborhood with <= acceptance and anti-backtracking, which
	// searches a richer neighborhood and converges in fewer sweeps. The two
	// variants can report different but equally-scored answers.
	SingleAxis bool

	// Parallel scores each sweep's candidates concurrently. Candidates are
	// materialized in scan order and acceptance stays sequential, so output
	// is bit-identical to the serial mode.
	Parallel bool

	// MaxSweeps overrides DefaultMaxSweeps when positive.
	MaxSweeps int
}

// Result is the outcome of a search.
type Result struct {
	Guess  colorspace.Pixel8
	Error  float64
	Sweeps int
}

// offset is a move on the RGB lattice, each component in {-1, 0, 1}.
type offset struct {
	r, g, b int
}

func (o offset) negate() offset {
	return offset{-o.r, -o.g, -o.b}
}

// candidate pairs a move with the lattice point it lands on.
type candidate struct {
	off offset
	pix colorspace.Pixel8
}

// Run searches from seed for the Pixel8 minimizing the distance between its
// converted XYZ value and goal. The seed being a local optimum already is a
// valid outcome: the search returns it unchanged after one sweep. An error
// is returned only if the safety cap on sweeps is exceeded, which would mean
// the acceptance rule stopped converging.
func (o *Optimizer) Run(seed colorspace.Pixel8, goal colorspace.Pixel) (Result, error) {
	maxSweeps := o.MaxSweeps
	if maxSweeps <= 0 {
		maxSweeps = DefaultMaxSweeps
	}

	best := seed
	bestErr := colorspace.Distance(o.Pipeline.ToXYZ(seed), goal)
	log.Debugf("seed %s error %f", seed.Hex(), bestErr)

	// forbidden is the negation of the previous sweep's accepted move; the
	// zero offset is never a candidate, so the zero value disables the rule
	// for the first sweep.
	var forbidden offset

	for sweep := 1; sweep <= maxSweeps; sweep++ {
		center := best
		cands := o.neighbors(center, forbidden)
		errs, err := o.score(cands, goal)
		if err != nil {
			return Result{}, err
		}

		accepted := false
		var lastMove offset
		for i, c := range cands {
			if o.accepts(errs[i], bestErr) {
				best = c.pix
				bestErr = errs[i]
				lastMove = c.off
				accepted = true
			}
		}

		if !accepted {
			return Result{Guess: best, Error: bestErr, Sweeps: sweep}, nil
		}
		forbidden = lastMove.negate()
		log.Debugf("sweep %d best %s error %f", sweep, best.Hex(), bestErr)
	}

	return Result{}, fmt.Errorf("no convergence after %d sweeps", maxSweeps)
}

// accepts reports whether a candidate error displaces the current best. The
// full-neighborhood variant takes ties, so the later candidate in scan order
// wins them; the single-axis variant requires strict improvement.
func (o *Optimizer) accepts(candErr, bestErr float64) bool {
	if o.SingleAxis {
		return candErr < bestErr
	}
	return candErr <= bestErr
}

// axisOffsets is the single-axis scan order.
var axisOffsets = []offset{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// neighbors enumerates the sweep's candidates in scan order. Moves that
// would push any channel outside [0, 255] are skipped entirely, never
// clamped and kept. In the full-neighborhood variant the forbidden offset
// (the way we just came) is excluded to avoid oscillating.
func (o *Optimizer) neighbors(center colorspace.Pixel8, forbidden offset) []candidate {
	if o.SingleAxis {
		cands := make([]candidate, 0, len(axisOffsets))
		for _, off := range axisOffsets {
			if pix, ok := shift(center, off); ok {
				cands = append(cands, candidate{off: off, pix: pix})
			}
		}
		return cands
	}

	cands := make([]candidate, 0, 26)
	for r := -1; r <= 1; r++ {
		for g := -1; g <= 1; g++ {
			for b := -1; b <= 1; b++ {
				off := offset{r, g, b}
				if off == (offset{}) || off == forbidden {
					continue
				}
				if pix, ok := shift(center, off); ok {
					cands = append(cands, candidate{off: off, pix: pix})
				}
			}
		}
	}
	return cands
}

// shift applies an offset to a lattice point, reporting false if any channel
// would leave [0, 255].
func shift(p colorspace.Pixel8, off offset) (colorspace.Pixel8, bool) {
	r := int(p.R) + off.r
	g := int(p.G) + off.g
	b := int(p.B) + off.b
	if r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return colorspace.Pixel8{}, false
	}
	return colorspace.Pixel8{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// score evaluates every candidate against the goal, into a slice indexed by
// scan order. Each evaluation is pure and independent, so the parallel path
// changes nothing observable.
func (o *Optimizer) score(cands []candidate, goal colorspace.Pixel) ([]float64, error) {
	errs := make([]float64, len(cands))
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			errs[i] = colorspace.Distance(o.Pipeline.ToXYZ(cands[i].pix), goal)
		}
	}
	if o.Parallel && len(cands) > 1 {
		if err := parallel.Run_in_parallel_over_range(0, f, 0, len(cands)); err != nil {
			return nil, fmt.Errorf("scoring candidates: %w", err)
		}
		return errs, nil
	}
	f(0, len(cands))
	return errs, nil
}
