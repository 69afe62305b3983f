// ABOUTME: Synthesis engine configuration
// ABOUTME: Musical constants for both voices, the delay and the wet/dry mix
package synth

import (
	"fmt"
	"math"

	"github.com/ahihi/fivier/pkg/audio"
)

// LFOConfig sets a modulator's rate in Hz and its starting phase in radians
type LFOConfig struct {
	Rate  float64
	Phase float64
}

// VoiceConfig describes one carrier and its three modulators
type VoiceConfig struct {
	// FrequencyRatio scales the engine fundamental to this voice's base frequency
	FrequencyRatio float64

	// Phase is the carrier's starting phase in radians
	Phase float64

	// FreqDepthRatio bounds the carrier to [base/ratio, base*ratio]; must be > 1
	FreqDepthRatio float64

	// AmpMin and AmpMax are the amplitude band swept by the amplitude LFO
	AmpMin float64
	AmpMax float64

	// PanScale scales the pan LFO into a balance in [-PanScale, PanScale]
	PanScale float64

	FreqLFO LFOConfig
	AmpLFO  LFOConfig
	PanLFO  LFOConfig
}

// Config holds everything the engine needs; nothing is read from globals
type Config struct {
	SampleRate   float64
	Fundamental  float64 // Hz
	DelaySeconds float64 // per-channel delay of the wet path
	DryGain      float64
	WetGain      float64
	Voice1       VoiceConfig
	Voice2       VoiceConfig
}

// DefaultConfig returns the reference patch: 140Hz and a fifth above,
// slowly drifting in pitch, level and position, with a 2.2s echo
func DefaultConfig() Config {
	return Config{
		SampleRate:   audio.DefaultSampleRate,
		Fundamental:  140,
		DelaySeconds: 2.2,
		DryGain:      0.6,
		WetGain:      0.4,
		Voice1: VoiceConfig{
			FrequencyRatio: 1,
			Phase:          0,
			FreqDepthRatio: 1.07,
			AmpMin:         0.1,
			AmpMax:         0.5,
			PanScale:       0.5,
			FreqLFO:        LFOConfig{Rate: 6.33, Phase: 0},
			AmpLFO:         LFOConfig{Rate: 2.11, Phase: 0},
			PanLFO:         LFOConfig{Rate: 0.21, Phase: 0.25 * audio.Tau},
		},
		Voice2: VoiceConfig{
			FrequencyRatio: 1.5,
			Phase:          0.5 * audio.Tau,
			FreqDepthRatio: 1.07,
			AmpMin:         0.1,
			AmpMax:         0.5,
			PanScale:       0.6,
			FreqLFO:        LFOConfig{Rate: 6.12, Phase: 0.333 * audio.Tau},
			AmpLFO:         LFOConfig{Rate: 2.3, Phase: 0.5 * audio.Tau},
			PanLFO:         LFOConfig{Rate: 0.17, Phase: 0},
		},
	}
}

// Limits keeping the delay line allocatable
const (
	MaxSampleRate   = 384000
	MaxDelaySeconds = 30
)

// DelayFrames returns the wet path delay in stereo frames. Only meaningful
// for a config that passes Validate.
func (c Config) DelayFrames() int {
	return int(c.DelaySeconds * c.SampleRate)
}

// Validate reports the first configuration value the engine cannot run with
func (c Config) Validate() error {
	if err := c.checkFinite(); err != nil {
		return err
	}
	if c.SampleRate <= 0 || c.SampleRate > MaxSampleRate {
		return &EngineError{Reason: fmt.Sprintf("sample rate must be in (0, %d], got %v", MaxSampleRate, c.SampleRate)}
	}
	if c.Fundamental <= 0 {
		return &EngineError{Reason: "fundamental must be positive"}
	}
	if c.DelaySeconds < 0 || c.DelaySeconds > MaxDelaySeconds {
		return &EngineError{Reason: fmt.Sprintf("delay must be in [0, %d] seconds, got %v", MaxDelaySeconds, c.DelaySeconds)}
	}
	voices := []struct {
		name string
		cfg  VoiceConfig
	}{
		{"voice1", c.Voice1},
		{"voice2", c.Voice2},
	}
	for _, v := range voices {
		if v.cfg.FrequencyRatio <= 0 {
			return &EngineError{Reason: v.name + ": frequency ratio must be positive"}
		}
		if v.cfg.FreqDepthRatio <= 1 {
			return &EngineError{Reason: v.name + ": frequency depth ratio must be greater than 1"}
		}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

// checkFinite rejects NaN and infinities, which slip through ordered comparisons
func (c Config) checkFinite() error {
	values := []namedValue{
		{"sample rate", c.SampleRate},
		{"fundamental", c.Fundamental},
		{"delay", c.DelaySeconds},
		{"dry gain", c.DryGain},
		{"wet gain", c.WetGain},
	}
	values = append(values, c.Voice1.values("voice1")...)
	values = append(values, c.Voice2.values("voice2")...)

	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return &EngineError{Reason: fmt.Sprintf("%s must be finite, got %v", v.name, v.value)}
		}
	}
	return nil
}

func (v VoiceConfig) values(name string) []namedValue {
	return []namedValue{
		{name + " frequency ratio", v.FrequencyRatio},
		{name + " phase", v.Phase},
		{name + " frequency depth ratio", v.FreqDepthRatio},
		{name + " amp min", v.AmpMin},
		{name + " amp max", v.AmpMax},
		{name + " pan scale", v.PanScale},
		{name + " frequency LFO rate", v.FreqLFO.Rate},
		{name + " frequency LFO phase", v.FreqLFO.Phase},
		{name + " amplitude LFO rate", v.AmpLFO.Rate},
		{name + " amplitude LFO phase", v.AmpLFO.Phase},
		{name + " pan LFO rate", v.PanLFO.Rate},
		{name + " pan LFO phase", v.PanLFO.Phase},
	}
}
