// ABOUTME: Pure numeric helpers for modulation routing
// ABOUTME: Range remapping, linear and constant-power panning, hard clipping
package dsp

import "math"

// Remap maps value from the domain [d0, d1] onto the range [r0, r1].
// It is not clamped: values outside the domain extrapolate linearly.
func Remap(d0, d1, r0, r1, value float64) float64 {
	return (value-d0)/(d1-d0)*(r1-r0) + r0
}

// PanLinear returns equal-gain (left, right) gains for balance in [-1, 1]
func PanLinear(balance float64) (float64, float64) {
	p := Remap(-1, 1, 0, 1, clamp(balance, -1, 1))
	return 1 - p, p
}

// PanConstantPower returns (left, right) gains with left²+right² == 1
func PanConstantPower(balance float64) (float64, float64) {
	angle := Remap(-1, 1, 0, math.Pi/2, clamp(balance, -1, 1))
	return math.Cos(angle), math.Sin(angle)
}

// ClipHard limits value to [-threshold, threshold]
func ClipHard(threshold, value float64) float64 {
	return clamp(value, -threshold, threshold)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
