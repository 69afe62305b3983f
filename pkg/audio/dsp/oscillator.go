// ABOUTME: Phase-accumulator sine oscillator
// ABOUTME: Used for both audible carriers and low-frequency modulators
package dsp

import (
	"math"

	"github.com/ahihi/fivier/pkg/audio"
)

// Oscillator generates a sine wave by accumulating phase
type Oscillator struct {
	phase          float64 // radians, always in [0, Tau)
	phaseIncrement float64 // radians per Advance
	frequency      float64
	sampleRate     float64
}

// NewOscillator creates an oscillator at frequency Hz starting at phase radians
func NewOscillator(frequency, phase, sampleRate float64) *Oscillator {
	o := &Oscillator{
		phase:      wrapPhase(phase),
		sampleRate: sampleRate,
	}
	o.SetFrequency(frequency)
	return o
}

// Read returns sin(phase) without advancing
func (o *Oscillator) Read() float64 {
	return math.Sin(o.phase)
}

// SetFrequency changes the increment only, so the waveform stays continuous
func (o *Oscillator) SetFrequency(frequency float64) {
	o.frequency = frequency
	o.phaseIncrement = audio.Tau / o.sampleRate * frequency
}

// Advance moves the phase forward by one step
func (o *Oscillator) Advance() {
	o.phase = wrapPhase(o.phase + o.phaseIncrement)
}

// Phase returns the current phase in radians
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// Frequency returns the current frequency in Hz
func (o *Oscillator) Frequency() float64 {
	return o.frequency
}

// PhaseIncrement returns the per-step phase delta in radians
func (o *Oscillator) PhaseIncrement() float64 {
	return o.phaseIncrement
}

// Sine evaluates sin(Tau*frequency*t + phase) directly from time in seconds
func Sine(frequency, phase, t float64) float64 {
	return math.Sin(frequency*t*audio.Tau + phase)
}

// wrapPhase reduces p into [0, Tau), including negative values
func wrapPhase(p float64) float64 {
	p = math.Mod(p, audio.Tau)
	if p < 0 {
		p += audio.Tau
	}
	// p+Tau can round up to exactly Tau for tiny negative p
	if p >= audio.Tau {
		p = 0
	}
	return p
}
