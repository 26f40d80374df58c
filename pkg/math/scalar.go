package math

import "github.com/chewxy/math32"

// Pi re-exported so callers don't mix math packages for one constant.
const Pi = math32.Pi

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return math32.Abs(x)
}

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1]. Phase progress ratios are always clamped
// through here; elapsed time may overshoot a duration by one frame.
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Smoothstep returns the Hermite interpolation of x between edge0 and edge1.
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
