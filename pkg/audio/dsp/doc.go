// ABOUTME: DSP building blocks for the synthesizer
// ABOUTME: Oscillator, modulation helpers and delay line
// Package dsp provides the signal-processing primitives used by the synth engine.
//
//   - Oscillator: phase-accumulator sine, used as carrier or LFO
//   - Remap, PanLinear, PanConstantPower, ClipHard: modulation helpers
//   - Delay: fixed-length ring buffer for the wet path
//
// None of these types are safe for concurrent use; the engine that owns them
// serializes access.
//
// Example:
//
//	lfo := dsp.NewOscillator(2.11, 0, 44100)
//	amp := dsp.Remap(-1, 1, 0.1, 0.5, lfo.Read())
//	lfo.Advance()
package dsp
