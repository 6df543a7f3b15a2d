// Package ntscjguess finds the NTSC-J color that, run through the NTSC-J to
// sRGB conversion, reproduces a target sRGB color as closely as possible in
// CIE XYZ space. Input and output are both gamma-encoded with the sRGB
// transfer curve.
package ntscjguess

import (
	"github.com/jsvensson/ntscjguess/internal/colorspace"
	"github.com/jsvensson/ntscjguess/internal/optimizer"
)

// Options configures a solve. The zero value gives the reference behavior:
// the precomputed NTSC-J matrices, full-neighborhood search, serial scoring.
type Options struct {
	// Pipeline supplies the conversion matrices; zero value means the
	// default NTSC-J to sRGB pipeline.
	Pipeline colorspace.Pipeline

	// SingleAxis, Parallel, and MaxSweeps are passed to the optimizer.
	SingleAxis bool
	Parallel   bool
	MaxSweeps  int
}

// Result is a solved color match.
type Result struct {
	// Input is the target sRGB color.
	Input colorspace.Pixel8
	// Guess is the NTSC-J color whose conversion lands closest to Input.
	Guess colorspace.Pixel8
	// Error is the remaining XYZ distance between the converted Guess and
	// the target.
	Error float64
	// Sweeps is the number of search sweeps taken, the final non-improving
	// one included.
	Sweeps int
}

// Solve searches for the NTSC-J pre-image of target. The search is seeded
// with target itself: the gamut shift is a small perturbation, so the answer
// is expected nearby. Pure, no I/O.
func Solve(target colorspace.Pixel8, opts Options) (Result, error) {
	pl := opts.Pipeline
	if pl == (colorspace.Pipeline{}) {
		pl = colorspace.Default()
	}

	opt := &optimizer.Optimizer{
		Pipeline:   pl,
		SingleAxis: opts.SingleAxis,
		Parallel:   opts.Parallel,
		MaxSweeps:  opts.MaxSweeps,
	}

	res, err := opt.Run(target, pl.GoalXYZ(target))
	if err != nil {
		return Result{}, err
	}

	return Result{
		Input:  target,
		Guess:  res.Guess,
		Error:  res.Error,
		Sweeps: res.Sweeps,
	}, nil
}
