// ABOUTME: Offline audio output for tests and headless rendering
// ABOUTME: Invokes the callback synchronously on demand instead of from a device
package output

import (
	"fmt"
	"sync"
)

// Offline is a Driver without a device. Render plays the part of the
// driver's audio thread.
type Offline struct {
	mu      sync.Mutex
	render  *renderer
	cfg     StreamConfig
	opened  bool
	started bool
	closed  bool
}

// NewOffline creates a new offline output
func NewOffline() *Offline {
	return &Offline{}
}

// Name returns the backend name
func (o *Offline) Name() string { return "offline" }

// Open registers the callback
func (o *Offline) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.opened {
		return cfg, fmt.Errorf("offline output already open")
	}
	if cfg.Channels <= 0 {
		return cfg, fmt.Errorf("invalid channel count: %d", cfg.Channels)
	}

	o.render = newRenderer(cb, cfg.Channels)
	cfg.Latency = cfg.BufferDuration()
	cfg.Device = "offline"
	o.cfg = cfg
	o.opened = true
	return cfg, nil
}

// Start marks the stream as running
func (o *Offline) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.opened || o.closed {
		return ErrNotOpen
	}
	o.started = true
	return nil
}

// Close stops rendering; the callback is never invoked afterwards
func (o *Offline) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.started = false
	return nil
}

// Render invokes the callback for frames frames, in FramesPerBuffer blocks
// like a device would, and returns the interleaved result
func (o *Offline) Render(frames int) ([]float32, error) {
	out := make([]float32, frames*o.channels())
	if err := o.RenderInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderInto fills out, which must hold whole frames
func (o *Offline) RenderInto(out []float32) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		return fmt.Errorf("offline output not started")
	}
	if len(out)%o.cfg.Channels != 0 {
		return fmt.Errorf("buffer of %d samples is not a whole number of %d-channel frames",
			len(out), o.cfg.Channels)
	}

	block := o.cfg.FramesPerBuffer * o.cfg.Channels
	if block <= 0 {
		block = len(out)
	}
	for start := 0; start < len(out); start += block {
		end := start + block
		if end > len(out) {
			end = len(out)
		}
		o.render.fill(out[start:end])
	}
	return nil
}

// Started reports whether Start succeeded and Close has not been called
func (o *Offline) Started() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}

// Closed reports whether Close has been called
func (o *Offline) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Aborted reports whether the callback has returned Abort
func (o *Offline) Aborted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.render != nil && o.render.aborted
}

func (o *Offline) channels() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cfg.Channels <= 0 {
		return 1
	}
	return o.cfg.Channels
}
