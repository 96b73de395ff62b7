package geom

import "math"

// Clamp bounds v to [lo, hi]. A NaN input recovers to the midpoint of the
// range instead of propagating.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the standard cubic ease t^2*(3-2t) with t clamped to
// [0,1]. First derivative is zero at both ends.
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ToPixels converts a normalized [0,1] coordinate to a pixel offset within
// a dimension, rounding to the nearest integer.
func ToPixels(norm float64, dim int) int {
	return int(math.Round(norm * float64(dim)))
}

// Even forces a pixel count down to the nearest even value. Odd output
// dimensions are rejected by most video codecs.
func Even(v int) int {
	return v - (v % 2)
}
