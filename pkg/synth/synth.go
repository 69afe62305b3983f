// ABOUTME: Audio session bridging the synthesis engine to an output driver
// ABOUTME: Owns the engine lock, the parameter snapshot and playback stats
package synth

import (
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ahihi/fivier/pkg/audio"
	"github.com/ahihi/fivier/pkg/audio/dsp"
	"github.com/ahihi/fivier/pkg/audio/output"
	"github.com/google/uuid"
)

// Stats contains playback statistics written by the audio callback
type Stats struct {
	Buffers uint64  // callbacks served
	Frames  uint64  // stereo frames generated
	Peak    float32 // absolute peak of the most recent buffer
}

// Synth is an audio session: one engine playing through one driver
type Synth struct {
	id         uuid.UUID
	driver     output.Driver
	bufferSize int
	stream     output.StreamConfig

	// Held by the audio callback for a whole buffer
	engineMu sync.Mutex
	engine   *Engine

	params atomic.Pointer[Params]

	buffers  atomic.Uint64
	frames   atomic.Uint64
	peakBits atomic.Uint32

	closed    atomic.Bool
	closeOnce sync.Once
}

// New builds the engine, opens driver with a stereo float32 stream of
// bufferSize frames per callback and registers the callback. Playback does
// not start until Play.
func New(driver output.Driver, bufferSize int, cfg Config) (*Synth, error) {
	if bufferSize <= 0 {
		return nil, &EngineError{Reason: fmt.Sprintf("buffer size must be positive, got %d", bufferSize)}
	}

	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	s := &Synth{
		id:         uuid.New(),
		driver:     driver,
		bufferSize: bufferSize,
		engine:     engine,
	}
	defaults := DefaultParams()
	s.params.Store(&defaults)

	requested := output.StreamConfig{
		SampleRate:      cfg.SampleRate,
		Channels:        audio.DefaultChannels,
		FramesPerBuffer: bufferSize,
	}

	stream, err := driver.Open(requested, s.process)
	if err != nil {
		// Open may have claimed part of the device before failing
		s.release()
		return nil, &DeviceError{Backend: driver.Name(), Op: "open", Err: err}
	}
	if stream.SampleRate != cfg.SampleRate || stream.Channels != audio.DefaultChannels {
		s.release()
		return nil, &DeviceError{
			Backend: driver.Name(),
			Op:      "open",
			Err: fmt.Errorf("device negotiated %.0fHz/%dch, need %.0fHz/%dch",
				stream.SampleRate, stream.Channels, cfg.SampleRate, audio.DefaultChannels),
		}
	}
	s.stream = stream

	log.Printf("[%s] Synth ready: %s on %s, %.0fHz, %d frames/buffer, delay %d samples",
		s.id, driver.Name(), stream.Device, stream.SampleRate, bufferSize, engine.DelayLen())

	return s, nil
}

// Play starts the transport
func (s *Synth) Play() error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.driver.Start(); err != nil {
		return &DeviceError{Backend: s.driver.Name(), Op: "start", Err: err}
	}
	log.Printf("[%s] Playback started", s.id)
	return nil
}

// Close releases the device. It always runs to completion; a release
// failure is logged, not returned. Safe to call more than once.
func (s *Synth) Close() {
	s.closeOnce.Do(func() {
		s.release()
		log.Printf("[%s] Synth closed", s.id)
	})
}

func (s *Synth) release() {
	s.closed.Store(true)
	if err := s.driver.Close(); err != nil {
		log.Printf("Warning: %s close failed: %v", s.driver.Name(), err)
	}
}

// process is the driver callback. It holds the engine lock for the whole
// buffer, reads the latest parameter snapshot once and never blocks on the
// control thread.
func (s *Synth) process(out []float32, frames int) output.Result {
	p := s.params.Load()
	gain := p.Gain()

	var peak float64

	s.engineMu.Lock()
	for i := range out {
		v := float64(s.engine.Next()) * gain
		if p.Limiter {
			v = dsp.ClipHard(p.Threshold, v)
		}
		out[i] = float32(v)
		peak = math.Max(peak, math.Abs(v))
	}
	s.engineMu.Unlock()

	s.buffers.Add(1)
	s.frames.Add(uint64(frames))
	s.peakBits.Store(math.Float32bits(float32(peak)))

	return output.Continue
}

// update applies f to a copy of the current params and publishes it
func (s *Synth) update(f func(*Params)) {
	for {
		current := s.params.Load()
		next := *current
		f(&next)
		if s.params.CompareAndSwap(current, &next) {
			return
		}
	}
}

// SetVolume sets the volume (0-100)
func (s *Synth) SetVolume(volume int) {
	s.update(func(p *Params) { p.Volume = clampVolume(volume) })
	log.Printf("Volume set to %d", clampVolume(volume))
}

// SetMuted sets mute state
func (s *Synth) SetMuted(muted bool) {
	s.update(func(p *Params) { p.Muted = muted })
	log.Printf("Muted: %v", muted)
}

// SetLimiter enables or disables the output limiter
func (s *Synth) SetLimiter(enabled bool) {
	s.update(func(p *Params) { p.Limiter = enabled })
	log.Printf("Limiter: %v", enabled)
}

// Params returns the current parameter snapshot
func (s *Synth) Params() Params {
	return *s.params.Load()
}

// Stats returns playback statistics
func (s *Synth) Stats() Stats {
	return Stats{
		Buffers: s.buffers.Load(),
		Frames:  s.frames.Load(),
		Peak:    math.Float32frombits(s.peakBits.Load()),
	}
}

// ID returns the session identifier used in log lines
func (s *Synth) ID() uuid.UUID {
	return s.id
}

// Backend returns the driver name
func (s *Synth) Backend() string {
	return s.driver.Name()
}

// Stream returns the negotiated stream parameters
func (s *Synth) Stream() output.StreamConfig {
	return s.stream
}

// BufferSize returns the requested frames per callback
func (s *Synth) BufferSize() int {
	return s.bufferSize
}
