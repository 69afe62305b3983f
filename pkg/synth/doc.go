// ABOUTME: Two-voice modulated sine synthesizer with a stereo delay
// ABOUTME: Provides the Engine and the Synth audio session
// Package synth generates the synthesizer's interleaved stereo signal.
//
// This package provides:
//   - Voice: a sine carrier with frequency, amplitude and pan LFOs
//   - Engine: two voices and a delay line, one sample per Next call
//   - Synth: an audio session running the Engine inside an output.Driver callback
//
// The engine alternates Left/Right on every Next call and advances all
// oscillators once per completed frame. The Synth holds the engine lock only
// on the audio thread; volume, mute and limiter changes are published as
// atomic Params snapshots.
//
// Example:
//
//	s, err := synth.New(output.NewOto(), 256, synth.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//	err = s.Play()
package synth
