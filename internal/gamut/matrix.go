package gamut

import (
	"fmt"

	"github.com/jsvensson/ntscjguess/internal/colorspace"
)

// detTolerance rejects matrices too close to singular to invert.
const detTolerance = 1e-4

func mul(a, b colorspace.Matrix) colorspace.Matrix {
	var out colorspace.Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return out
}

func eval(m colorspace.Matrix, v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// inverse inverts a 3x3 matrix by cofactor expansion.
func inverse(m colorspace.Matrix) (colorspace.Matrix, error) {
	c0 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c1 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c2 := m[1][0]*m[2][1] - m[1][1]*m[2][0]

	det := m[0][0]*c0 + m[0][1]*c1 + m[0][2]*c2
	if det > -detTolerance && det < detTolerance {
		return colorspace.Matrix{}, fmt.Errorf("matrix is singular (det %g)", det)
	}

	return colorspace.Matrix{
		{
			c0 / det,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) / det,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) / det,
		},
		{
			c1 / det,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) / det,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) / det,
		},
		{
			c2 / det,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) / det,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) / det,
		},
	}, nil
}
