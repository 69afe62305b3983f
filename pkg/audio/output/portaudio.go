//go:build portaudio

// ABOUTME: PortAudio output implementation
// ABOUTME: Cross-platform callback-driven audio output using PortAudio
package output

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
)

// PortAudio output implementation
type PortAudio struct {
	stream      *portaudio.Stream
	render      *renderer
	initialized bool
	started     bool
}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Driver {
	return &PortAudio{}
}

// Name returns the backend name
func (p *PortAudio) Name() string { return "portaudio" }

// Open initializes PortAudio and opens a float32 stream on the default device
func (p *PortAudio) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	if err := portaudio.Initialize(); err != nil {
		return cfg, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	// From here on Close must Terminate, even if the rest of Open fails
	p.initialized = true

	device, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return cfg, fmt.Errorf("failed to get default output device: %w", err)
	}

	params := portaudio.LowLatencyParameters(nil, device)
	params.Output.Channels = cfg.Channels
	params.SampleRate = cfg.SampleRate
	params.FramesPerBuffer = cfg.FramesPerBuffer

	p.render = newRenderer(cb, cfg.Channels)

	// The []float32 callback argument selects the Float32 interleaved format
	if err := portaudio.IsFormatSupported(params, p.process); err != nil {
		return cfg, fmt.Errorf("unsupported stream format on %s: %w", device.Name, err)
	}

	stream, err := portaudio.OpenStream(params, p.process)
	if err != nil {
		return cfg, fmt.Errorf("failed to open stream: %w", err)
	}
	p.stream = stream

	cfg.Latency = params.Output.Latency
	cfg.Device = device.Name

	log.Printf("Audio output initialized: %.0fHz, %d channels, float32, %d frames/buffer, latency %v (portaudio/%s)",
		cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer, cfg.Latency, device.Name)

	return cfg, nil
}

// process is the PortAudio stream callback
func (p *PortAudio) process(out []float32) {
	p.render.fill(out)
}

// Start starts the stream
func (p *PortAudio) Start() error {
	if p.stream == nil {
		return ErrNotOpen
	}
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to start stream: %w", err)
	}
	p.started = true
	return nil
}

// Close stops the stream and terminates PortAudio; each step runs even if an
// earlier one fails
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if p.started {
			if err := p.stream.Stop(); err != nil {
				log.Printf("Warning: portaudio stream stop error: %v", err)
			}
			p.started = false
		}
		if err := p.stream.Close(); err != nil {
			log.Printf("Warning: portaudio stream close error: %v", err)
		}
		p.stream = nil
	}
	if p.initialized {
		p.initialized = false
		if err := portaudio.Terminate(); err != nil {
			return fmt.Errorf("failed to terminate portaudio: %w", err)
		}
	}
	return nil
}
