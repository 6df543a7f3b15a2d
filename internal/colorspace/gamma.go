package colorspace

import "math"

// InverseGamma converts a single gamma-encoded sRGB component [0,1] to
// linear light, clamped to [0,1].
func InverseGamma(v float64) float64 {
	if v <= 0.04045 {
		return clamp01(v / 12.92)
	}
	return clamp01(math.Pow((v+0.055)/1.055, 2.4))
}

// ForwardGamma converts a single linear component [0,1] to gamma-encoded
// sRGB, clamped to [0,1]. The search path never encodes; this exists for
// symmetry with InverseGamma.
func ForwardGamma(v float64) float64 {
	if v <= 0.0031308 {
		return clamp01(v * 12.92)
	}
	return clamp01(1.055*math.Pow(v, 1.0/2.4) - 0.055)
}
