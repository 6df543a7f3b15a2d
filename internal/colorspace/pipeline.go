package colorspace

import "math"

// Pipeline holds the two matrices of the conversion chain. They are injected
// at construction so tests can substitute alternate gamuts and white points
// without recompiling.
type Pipeline struct {
	// Gamut converts linear NTSC-J RGB to linear sRGB.
	Gamut Matrix
	// RGBToXYZ converts linear sRGB to CIE XYZ.
	RGBToXYZ Matrix
}

// Default returns the pipeline with the precomputed reference matrices.
func Default() Pipeline {
	return Pipeline{Gamut: NTSCJtoSRGB, RGBToXYZ: SRGBtoXYZ}
}

// ToXYZ runs an NTSC-J 8-bit color through the full chain: decode, linearize,
// gamut convert, then to XYZ. This is the optimizer's objective oracle.
func (pl Pipeline) ToXYZ(p Pixel8) Pixel {
	return pl.RGBToXYZ.Apply(pl.Gamut.Apply(p.Decode().Linear()))
}

// GoalXYZ converts an sRGB 8-bit color to XYZ without the gamut matrix. The
// search target is already in the sRGB gamut; only the optimizer's
// candidates cross from NTSC-J.
func (pl Pipeline) GoalXYZ(p Pixel8) Pixel {
	return pl.RGBToXYZ.Apply(p.Decode().Linear())
}

// Distance is the Euclidean distance between two pixels. Only meaningful in
// XYZ space.
func Distance(a, b Pixel) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
