//go:build malgo

// ABOUTME: Malgo-based audio output implementation
// ABOUTME: Uses miniaudio via malgo with a float32 playback device callback
package output

import (
	"fmt"
	"log"

	"github.com/gen2brain/malgo"
)

// Malgo output implementation using malgo/miniaudio library
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	render   *renderer
	channels int

	// Scratch buffer reused by every callback
	samples []float32
}

// NewMalgo creates a new Malgo output
func NewMalgo() Driver {
	return &Malgo{}
}

// Name returns the backend name
func (m *Malgo) Name() string { return "malgo" }

// Open initializes the miniaudio context and a playback device. The device is
// not started.
func (m *Malgo) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	if m.device != nil {
		return cfg, fmt.Errorf("malgo output already open")
	}
	if cfg.FramesPerBuffer <= 0 {
		return cfg, fmt.Errorf("invalid buffer size: %d frames", cfg.FramesPerBuffer)
	}

	if m.malgoCtx == nil {
		ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
		if err != nil {
			return cfg, fmt.Errorf("failed to initialize malgo context: %w", err)
		}
		m.malgoCtx = ctx
	}

	m.channels = cfg.Channels
	m.render = newRenderer(cb, cfg.Channels)
	m.samples = make([]float32, cfg.FramesPerBuffer*cfg.Channels)

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = uint32(cfg.Channels)
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.FramesPerBuffer)
	deviceConfig.Alsa.NoMMap = 1

	deviceCallbacks := malgo.DeviceCallbacks{
		Data: m.dataCallback,
	}

	device, err := malgo.InitDevice(m.malgoCtx.Context, deviceConfig, deviceCallbacks)
	if err != nil {
		return cfg, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	m.device = device

	cfg.SampleRate = float64(device.SampleRate())
	cfg.Latency = cfg.BufferDuration()
	cfg.Device = "default"

	log.Printf("Audio output initialized: %.0fHz, %d channels, float32, %d frames/buffer (malgo)",
		cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)

	return cfg, nil
}

// dataCallback is called by malgo to fill the audio output buffer.
// miniaudio may ask for more than one period; the request is served in
// scratch-sized blocks so the audio thread never allocates.
func (m *Malgo) dataCallback(pOutput, pInput []byte, frameCount uint32) {
	fillEncoded(m.render, m.samples, pOutput[:int(frameCount)*m.channels*bytesPerFloat32])
}

// Start starts the playback device
func (m *Malgo) Start() error {
	if m.device == nil {
		return ErrNotOpen
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

// Close uninitializes the device and context
func (m *Malgo) Close() error {
	if m.device != nil {
		if err := m.device.Stop(); err != nil {
			log.Printf("Warning: device stop error: %v", err)
		}
		m.device.Uninit()
		m.device = nil
	}

	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	return nil
}
