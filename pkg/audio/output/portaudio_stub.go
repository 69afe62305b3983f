//go:build !portaudio

// ABOUTME: PortAudio placeholder for builds without the portaudio tag
// ABOUTME: Keeps the backend selectable by name while refusing to open a stream
package output

import (
	"errors"
)

var errPortAudioDisabled = errors.New("portaudio backend not compiled in (build with -tags portaudio)")

// PortAudio is the disabled backend
type PortAudio struct{}

// NewPortAudio creates a driver whose Open always fails
func NewPortAudio() Driver {
	return &PortAudio{}
}

// Name returns the backend name
func (p *PortAudio) Name() string { return "portaudio" }

// Open reports that the backend is unavailable
func (p *PortAudio) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	return cfg, errPortAudioDisabled
}

// Start reports that the backend is unavailable
func (p *PortAudio) Start() error { return errPortAudioDisabled }

// Close has nothing to release
func (p *PortAudio) Close() error { return nil }
