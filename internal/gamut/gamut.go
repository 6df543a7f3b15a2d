// Package gamut derives the color pipeline's conversion matrices from gamut
// descriptions: a named preset, or an HCL file giving a white point (as
// chromaticity or color temperature) or a literal matrix. The default preset
// reproduces the precomputed reference matrices bit for bit.
package gamut

import (
	"fmt"

	"github.com/jsvensson/ntscjguess/internal/colorspace"
)

// Built-in gamut presets. NTSC-J sets used a 9300K+27mpcd white point;
// NTSC-J broadcasts used 9300K+8mpcd.
const (
	PresetNTSCJ     = "ntscj"
	PresetBroadcast = "ntscj-broadcast"
)

var (
	// d65 is the sRGB display white point.
	d65 = Chromaticity{X: 0.312713, Y: 0.329016}

	// broadcastWhite is the 9300K+8mpcd NTSC-J broadcast white point.
	broadcastWhite = Chromaticity{X: 0.2838, Y: 0.2981}

	srgbPrimaries = [3]Chromaticity{{0.64, 0.33}, {0.30, 0.60}, {0.15, 0.06}}

	// NTSC-J kept the 1953 NTSC primaries.
	ntscPrimaries = [3]Chromaticity{{0.67, 0.33}, {0.21, 0.71}, {0.14, 0.08}}
)

// Spec describes a source gamut. Exactly one of WhitePoint, Temperature, or
// Override must be set; Override wins if present.
type Spec struct {
	// WhitePoint is the source white as a chromaticity coordinate.
	WhitePoint Chromaticity

	// Temperature is the source white as a correlated color temperature in
	// kelvin, used when WhitePoint is zero.
	Temperature float64

	// Override skips derivation and uses this as the gamut conversion
	// matrix directly.
	Override *colorspace.Matrix
}

// Resolve maps a preset name or HCL file path to a pipeline. An empty name
// means the default NTSC-J preset.
func Resolve(name string) (colorspace.Pipeline, error) {
	switch name {
	case "", PresetNTSCJ:
		return colorspace.Default(), nil
	case PresetBroadcast:
		return Conversion(Spec{WhitePoint: broadcastWhite})
	}

	spec, err := Load(name)
	if err != nil {
		return colorspace.Pipeline{}, err
	}
	return Conversion(spec)
}

// Conversion builds the pipeline for a gamut description: RGB to XYZ with
// the NTSC primaries under the source white point, Bradford adaptation to
// D65, then back through the inverse of the sRGB matrix.
func Conversion(s Spec) (colorspace.Pipeline, error) {
	if s.Override != nil {
		return colorspace.Pipeline{Gamut: *s.Override, RGBToXYZ: colorspace.SRGBtoXYZ}, nil
	}

	wp := s.WhitePoint
	if wp == (Chromaticity{}) {
		if s.Temperature == 0 {
			return colorspace.Pipeline{}, fmt.Errorf("gamut spec has no white point, temperature, or matrix")
		}
		var err error
		wp, err = WhitePointFromTemp(s.Temperature)
		if err != nil {
			return colorspace.Pipeline{}, err
		}
	}

	source, err := rgbToXYZ(ntscPrimaries, wp)
	if err != nil {
		return colorspace.Pipeline{}, fmt.Errorf("source gamut: %w", err)
	}
	adapt, err := adaptationMatrix(wp, d65)
	if err != nil {
		return colorspace.Pipeline{}, err
	}
	dest, err := rgbToXYZ(srgbPrimaries, d65)
	if err != nil {
		return colorspace.Pipeline{}, fmt.Errorf("sRGB gamut: %w", err)
	}
	destInv, err := inverse(dest)
	if err != nil {
		return colorspace.Pipeline{}, err
	}

	return colorspace.Pipeline{
		Gamut:    mul(destInv, mul(adapt, source)),
		RGBToXYZ: colorspace.SRGBtoXYZ,
	}, nil
}

// rgbToXYZ builds the RGB to XYZ transfer matrix for a primary triple and
// white point: the absolute primaries matrix, with columns scaled so that
// RGB (1,1,1) maps to the white point.
func rgbToXYZ(primaries [3]Chromaticity, wp Chromaticity) (colorspace.Matrix, error) {
	var abs colorspace.Matrix
	for col, p := range primaries {
		xyz := p.XYZ()
		abs[0][col] = xyz[0]
		abs[1][col] = xyz[1]
		abs[2][col] = xyz[2]
	}

	absInv, err := inverse(abs)
	if err != nil {
		return colorspace.Matrix{}, err
	}
	coef := eval(absInv, wp.XYZ())

	var out colorspace.Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row][col] = abs[row][col] * coef[col]
		}
	}
	return out, nil
}
