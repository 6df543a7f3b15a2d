// Package colorspace implements the color pipeline: 8-bit RGB triples in,
// CIE XYZ coordinates out, with the sRGB transfer curve and 3x3 gamut
// matrices in between.
package colorspace

import (
	"fmt"
	"strconv"
	"strings"
)

// Pixel is a color as three float channels in [0, 1]. Depending on the
// pipeline stage it holds gamma-encoded RGB, linear RGB, or CIE XYZ; the
// space is implicit from context. Values are immutable; every transform
// returns a new Pixel.
type Pixel struct {
	R, G, B float64
}

// Pixel8 is a quantized 8-bit RGB color. It is the only representation the
// optimizer reports as a final answer, since display hardware takes integral
// channel values.
type Pixel8 struct {
	R, G, B uint8
}

// DecodeChannel normalizes an 8-bit channel to the unit range.
func DecodeChannel(c uint8) float64 {
	return float64(c) / 255.0
}

// EncodeChannel quantizes a unit-range channel to 8 bits, truncating toward
// zero. Truncation, not rounding: it changes which 8-bit values are
// reachable as an exact match for certain inputs.
func EncodeChannel(f float64) uint8 {
	return uint8(clamp01(f) * 255.0)
}

// Decode converts a Pixel8 to a gamma-encoded Pixel.
func (p Pixel8) Decode() Pixel {
	return Pixel{
		R: DecodeChannel(p.R),
		G: DecodeChannel(p.G),
		B: DecodeChannel(p.B),
	}
}

// Encode converts a Pixel to a Pixel8, truncating each channel.
func (p Pixel) Encode() Pixel8 {
	return Pixel8{
		R: EncodeChannel(p.R),
		G: EncodeChannel(p.G),
		B: EncodeChannel(p.B),
	}
}

// Linear applies the sRGB inverse gamma function to each channel.
func (p Pixel) Linear() Pixel {
	return Pixel{
		R: InverseGamma(p.R),
		G: InverseGamma(p.G),
		B: InverseGamma(p.B),
	}
}

// ParseHex parses a 0x-prefixed 24-bit RGB value like "0x1A2B3C" into a
// Pixel8. The string must be exactly 8 characters: the 0x prefix and 6 hex
// digits, nothing else.
func ParseHex(s string) (Pixel8, error) {
	if len(s) != 8 {
		return Pixel8{}, fmt.Errorf("invalid color %q: must be 0x followed by 6 hex digits", s)
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Pixel8{}, fmt.Errorf("invalid color %q: missing 0x prefix", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 32)
	if err != nil {
		return Pixel8{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Pixel8{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Hex returns the color as a 0x-prefixed hex string, e.g. "0x1A2B3C".
func (p Pixel8) Hex() string {
	return fmt.Sprintf("0x%02X%02X%02X", p.R, p.G, p.B)
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
