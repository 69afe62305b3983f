// ABOUTME: Tests for modulation helpers
// ABOUTME: Covers remapping, both panning laws and hard clipping
package dsp

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func TestRemapEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		d0, d1, r0, r1 float64
	}{
		{"lfo to amplitude", -1, 1, 0.1, 0.5},
		{"lfo to frequency band", -1, 1, 140 / 1.07, 140 * 1.07},
		{"inverted range", 0, 1, 1, 0},
		{"offset domain", 10, 20, -3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remap(tt.d0, tt.d1, tt.r0, tt.r1, tt.d0); math.Abs(got-tt.r0) > tolerance {
				t.Errorf("expected %v at d0, got %v", tt.r0, got)
			}
			if got := Remap(tt.d0, tt.d1, tt.r0, tt.r1, tt.d1); math.Abs(got-tt.r1) > tolerance {
				t.Errorf("expected %v at d1, got %v", tt.r1, got)
			}
		})
	}
}

func TestRemapIsAffine(t *testing.T) {
	for _, frac := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		value := -1 + 2*frac
		expected := 0.1 + frac*(0.5-0.1)
		if got := Remap(-1, 1, 0.1, 0.5, value); math.Abs(got-expected) > tolerance {
			t.Errorf("value %v: expected %v, got %v", value, expected, got)
		}
	}
}

func TestRemapExtrapolates(t *testing.T) {
	if got := Remap(0, 1, 0, 10, 2); math.Abs(got-20) > tolerance {
		t.Errorf("expected 20, got %v", got)
	}
	if got := Remap(0, 1, 0, 10, -1); math.Abs(got+10) > tolerance {
		t.Errorf("expected -10, got %v", got)
	}
}

func TestPanConstantPowerPoints(t *testing.T) {
	half := math.Sqrt2 / 2
	tests := []struct {
		name        string
		balance     float64
		left, right float64
	}{
		{"hard left", -1, 1, 0},
		{"center", 0, half, half},
		{"hard right", 1, 0, 1},
		{"clamped right", 2, 0, 1},
		{"clamped left", -5, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := PanConstantPower(tt.balance)
			if math.Abs(l-tt.left) > tolerance || math.Abs(r-tt.right) > tolerance {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.left, tt.right, l, r)
			}
		})
	}
}

func TestPanConstantPowerKeepsPower(t *testing.T) {
	for b := -1.0; b <= 1.0; b += 0.01 {
		l, r := PanConstantPower(b)
		if p := l*l + r*r; math.Abs(p-1) > 1e-12 {
			t.Fatalf("balance %v: expected power 1, got %v", b, p)
		}
	}
}

func TestPanConstantPowerClampMatchesEdge(t *testing.T) {
	l2, r2 := PanConstantPower(2.0)
	l1, r1 := PanConstantPower(1.0)
	if l2 != l1 || r2 != r1 {
		t.Errorf("expected pan(2) == pan(1), got (%v, %v) vs (%v, %v)", l2, r2, l1, r1)
	}
}

func TestPanLinear(t *testing.T) {
	tests := []struct {
		name        string
		balance     float64
		left, right float64
	}{
		{"hard left", -1, 1, 0},
		{"center", 0, 0.5, 0.5},
		{"three quarters right", 0.5, 0.25, 0.75},
		{"hard right", 1, 0, 1},
		{"clamped", 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r := PanLinear(tt.balance)
			if math.Abs(l-tt.left) > tolerance || math.Abs(r-tt.right) > tolerance {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.left, tt.right, l, r)
			}
			if math.Abs(l+r-1) > tolerance {
				t.Errorf("expected gains to sum to 1, got %v", l+r)
			}
		})
	}
}

func TestClipHard(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		value     float64
		expected  float64
	}{
		{"inside", 1, 0.3, 0.3},
		{"at threshold", 1, 1, 1},
		{"above", 1, 1.7, 1},
		{"below", 1, -2, -1},
		{"small threshold", 0.25, -0.5, -0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipHard(tt.threshold, tt.value); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
