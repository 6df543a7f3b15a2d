package colorspace

// Matrix is a 3x3 linear color transform, row-major. Matrices are built once
// and never mutated.
type Matrix [3][3]float64

// NTSCJtoSRGB is the precomputed NTSC-J to sRGB gamut conversion matrix,
// Bradford-adapted from the NTSC-J white point to D65.
//
// NTSC-J television sets had a white point of 9300K+27mpcd (x=0.281,
// y=0.311); broadcasts used 9300K+8mpcd (x=0.2838, y=0.2981). This matrix
// uses 9300K+27mpcd for the NTSC-J white point and x=0.312713, y=0.329016
// for D65.
var NTSCJtoSRGB = Matrix{
	{1.34756301456925, -0.276463760747096, -0.071099263267176},
	{-0.031150036968175, 0.956512223260545, 0.074637860817515},
	{-0.024443490594835, -0.048150182045316, 1.07259361295816},
}

// SRGBtoXYZ is the RGB to CIE XYZ matrix for the sRGB primaries under D65.
var SRGBtoXYZ = Matrix{
	{0.412410846488539, 0.357584567852952, 0.180453803933608},
	{0.212649342720653, 0.715169135705904, 0.072181521573443},
	{0.01933175842915, 0.119194855950984, 0.950390034050337},
}

// Apply multiplies the matrix with the pixel and clamps each channel to
// [0, 1]. Out-of-gamut values are clipped, not wrapped; the information loss
// is an accepted approximation.
func (m Matrix) Apply(p Pixel) Pixel {
	return Pixel{
		R: clamp01(m[0][0]*p.R + m[0][1]*p.G + m[0][2]*p.B),
		G: clamp01(m[1][0]*p.R + m[1][1]*p.G + m[1][2]*p.B),
		B: clamp01(m[2][0]*p.R + m[2][1]*p.G + m[2][2]*p.B),
	}
}
