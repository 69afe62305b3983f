// ABOUTME: One synth voice: a carrier plus frequency, amplitude and pan LFOs
// ABOUTME: Produces a panned, amplitude-modulated mono signal per channel
package synth

import (
	"github.com/ahihi/fivier/pkg/audio"
	"github.com/ahihi/fivier/pkg/audio/dsp"
)

// Voice is a frequency-, amplitude- and pan-modulated sine carrier
type Voice struct {
	carrier *dsp.Oscillator
	freqLFO *dsp.Oscillator
	ampLFO  *dsp.Oscillator
	panLFO  *dsp.Oscillator

	baseFrequency  float64
	freqDepthRatio float64
	ampMin         float64
	ampMax         float64
	panScale       float64
}

// NewVoice builds a voice at fundamental*cfg.FrequencyRatio
func NewVoice(fundamental, sampleRate float64, cfg VoiceConfig) *Voice {
	base := fundamental * cfg.FrequencyRatio
	return &Voice{
		carrier:        dsp.NewOscillator(base, cfg.Phase, sampleRate),
		freqLFO:        dsp.NewOscillator(cfg.FreqLFO.Rate, cfg.FreqLFO.Phase, sampleRate),
		ampLFO:         dsp.NewOscillator(cfg.AmpLFO.Rate, cfg.AmpLFO.Phase, sampleRate),
		panLFO:         dsp.NewOscillator(cfg.PanLFO.Rate, cfg.PanLFO.Phase, sampleRate),
		baseFrequency:  base,
		freqDepthRatio: cfg.FreqDepthRatio,
		ampMin:         cfg.AmpMin,
		ampMax:         cfg.AmpMax,
		panScale:       cfg.PanScale,
	}
}

// Generate returns this voice's output for channel (audio.Left or audio.Right).
// The only side effect is retuning the carrier; no phase moves, so both
// channels of a frame see the same modulator values.
func (v *Voice) Generate(channel int) float64 {
	k := v.freqDepthRatio
	freq := dsp.Remap(-1, 1, v.baseFrequency/k, v.baseFrequency*k, v.freqLFO.Read())
	v.carrier.SetFrequency(freq)

	wave := v.carrier.Read()
	amp := dsp.Remap(-1, 1, v.ampMin, v.ampMax, v.ampLFO.Read())

	left, right := dsp.PanConstantPower(v.panScale * v.panLFO.Read())
	gain := right
	if channel == audio.Left {
		gain = left
	}

	return gain * amp * wave
}

// Advance steps all four oscillators once
func (v *Voice) Advance() {
	v.carrier.Advance()
	v.freqLFO.Advance()
	v.ampLFO.Advance()
	v.panLFO.Advance()
}

// BaseFrequency returns the unmodulated carrier frequency in Hz
func (v *Voice) BaseFrequency() float64 {
	return v.baseFrequency
}

// Carrier exposes the audible oscillator
func (v *Voice) Carrier() *dsp.Oscillator {
	return v.carrier
}

// Oscillators returns carrier, frequency, amplitude and pan oscillators in order
func (v *Voice) Oscillators() [4]*dsp.Oscillator {
	return [4]*dsp.Oscillator{v.carrier, v.freqLFO, v.ampLFO, v.panLFO}
}
