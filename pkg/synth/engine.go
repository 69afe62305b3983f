// ABOUTME: Synthesis engine producing one interleaved stereo sample per call
// ABOUTME: Two voices into a wet/dry delay, with frame-gated oscillator advance
package synth

import (
	"github.com/ahihi/fivier/pkg/audio"
	"github.com/ahihi/fivier/pkg/audio/dsp"
)

// Engine owns both voices, the delay line and the stereo channel cursor.
// It is not safe for concurrent use.
type Engine struct {
	voice1  *Voice
	voice2  *Voice
	delay   *dsp.Delay
	channel int

	dryGain float64
	wetGain float64
}

// NewEngine builds an engine from cfg
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		voice1:  NewVoice(cfg.Fundamental, cfg.SampleRate, cfg.Voice1),
		voice2:  NewVoice(cfg.Fundamental, cfg.SampleRate, cfg.Voice2),
		delay:   dsp.NewDelay(cfg.DelayFrames()),
		channel: audio.Left,
		dryGain: cfg.DryGain,
		wetGain: cfg.WetGain,
	}, nil
}

// Next generates the sample for the current channel and moves the cursor
func (e *Engine) Next() audio.Sample {
	dry := e.voice1.Generate(e.channel) + e.voice2.Generate(e.channel)

	// Read before Advance, or the wet path would echo the current sample
	wet := float64(e.delay.Read())
	out := e.dryGain*dry + e.wetGain*wet

	e.channel = 1 - e.channel
	if e.channel == audio.Left {
		// A full frame is done; both channels read identical modulators
		e.voice1.Advance()
		e.voice2.Advance()
	}

	// Every sample, so left and right take separate delay slots
	e.delay.Advance(audio.Sample(dry))

	return audio.Sample(out)
}

// Fill runs Next once per slot of out
func (e *Engine) Fill(out []audio.Sample) {
	for i := range out {
		out[i] = e.Next()
	}
}

// Channel returns the channel the next sample belongs to
func (e *Engine) Channel() int {
	return e.channel
}

// Voices returns both voices
func (e *Engine) Voices() (*Voice, *Voice) {
	return e.voice1, e.voice2
}

// DelayLen returns the delay line length in samples
func (e *Engine) DelayLen() int {
	return e.delay.Len()
}
