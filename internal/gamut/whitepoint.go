package gamut

import (
	"fmt"

	"github.com/jsvensson/ntscjguess/internal/colorspace"
)

// Chromaticity is a CIE xy chromaticity coordinate.
type Chromaticity struct {
	X, Y float64
}

// XYZ returns the chromaticity as XYZ tristimulus values with Y normalized
// to 1.
func (c Chromaticity) XYZ() [3]float64 {
	return [3]float64{c.X / c.Y, 1.0, (1.0 - c.X - c.Y) / c.Y}
}

// bradford is the Bradford cone response matrix.
var bradford = colorspace.Matrix{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

// WhitePointFromTemp returns the chromaticity of a blackbody illuminant at
// the given correlated color temperature, valid from 4000K to 25000K.
func WhitePointFromTemp(kelvin float64) (Chromaticity, error) {
	t := kelvin
	t2 := t * t
	t3 := t2 * t

	var x float64
	switch {
	case t >= 4000 && t <= 7000:
		x = -4.6070*(1e9/t3) + 2.9678*(1e6/t2) + 0.09911*(1e3/t) + 0.244063
	case t > 7000 && t <= 25000:
		x = -2.0064*(1e9/t3) + 1.9018*(1e6/t2) + 0.24748*(1e3/t) + 0.237040
	default:
		return Chromaticity{}, fmt.Errorf("temperature %gK outside the 4000-25000K range", kelvin)
	}

	y := -3.000*(x*x) + 2.870*x - 0.275
	return Chromaticity{X: x, Y: y}, nil
}

// adaptationMatrix returns the Bradford chromatic adaptation matrix carrying
// XYZ values from the source white point to the destination white point.
func adaptationMatrix(src, dst Chromaticity) (colorspace.Matrix, error) {
	inv, err := inverse(bradford)
	if err != nil {
		return colorspace.Matrix{}, err
	}

	srcCone := eval(bradford, src.XYZ())
	dstCone := eval(bradford, dst.XYZ())
	for i := 0; i < 3; i++ {
		if srcCone[i] > -detTolerance && srcCone[i] < detTolerance {
			return colorspace.Matrix{}, fmt.Errorf("degenerate source white point %+v", src)
		}
	}

	scale := colorspace.Matrix{
		{dstCone[0] / srcCone[0], 0, 0},
		{0, dstCone[1] / srcCone[1], 0},
		{0, 0, dstCone[2] / srcCone[2]},
	}
	return mul(inv, mul(scale, bradford)), nil
}
