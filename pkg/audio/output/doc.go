// ABOUTME: Audio output package for driving playback devices
// ABOUTME: Provides the callback Driver interface and its backends
// Package output provides callback-driven audio playback drivers.
//
// A Driver pulls interleaved float32 samples from a Callback on its own
// real-time thread. Backends:
//   - Oto: ebitengine/oto (default, pulls through an io.Reader)
//   - PortAudio: gordonklaus/portaudio (build with -tags portaudio)
//   - Malgo: miniaudio via gen2brain/malgo (build with -tags malgo)
//   - Offline: renders on demand, for tests and headless use
//
// Example:
//
//	out, err := output.New("oto")
//	cfg, err := out.Open(output.StreamConfig{SampleRate: 44100, Channels: 2, FramesPerBuffer: 256}, fill)
//	err = out.Start()
//	defer out.Close()
package output
