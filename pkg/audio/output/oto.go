// ABOUTME: Oto-based audio output implementation
// ABOUTME: Feeds a persistent oto player from a reader that invokes the callback
package output

import (
	"fmt"
	"log"

	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using oto library
type Oto struct {
	otoCtx *oto.Context
	player *oto.Player
	reader *callbackReader
	cfg    StreamConfig
}

// NewOto creates a new Oto output
func NewOto() Driver {
	return &Oto{}
}

// Name returns the backend name
func (o *Oto) Name() string { return "oto" }

// Open creates the oto context and a player that pulls from the callback
func (o *Oto) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	// oto only allows one context per process, so a second Open is refused
	if o.otoCtx != nil {
		return cfg, fmt.Errorf("oto output already open")
	}
	if cfg.FramesPerBuffer <= 0 {
		return cfg, fmt.Errorf("invalid buffer size: %d frames", cfg.FramesPerBuffer)
	}

	op := &oto.NewContextOptions{
		SampleRate:   int(cfg.SampleRate),
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.BufferDuration(),
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return cfg, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.reader = newCallbackReader(newRenderer(cb, cfg.Channels), cfg.FramesPerBuffer*cfg.Channels)

	// Persistent player; Start only calls Play on it
	o.player = o.otoCtx.NewPlayer(o.reader)
	o.player.SetBufferSize(cfg.FramesPerBuffer * cfg.Channels * bytesPerFloat32)

	cfg.Latency = cfg.BufferDuration()
	cfg.Device = "default"
	o.cfg = cfg

	log.Printf("Audio output initialized: %.0fHz, %d channels, float32, %d frames/buffer (oto)",
		cfg.SampleRate, cfg.Channels, cfg.FramesPerBuffer)

	return cfg, nil
}

// Start begins playback
func (o *Oto) Start() error {
	if o.player == nil {
		return ErrNotOpen
	}
	if err := o.otoCtx.Err(); err != nil {
		return fmt.Errorf("oto context error: %w", err)
	}
	o.player.Play()
	return nil
}

// Close releases output resources; failures are logged, not returned
func (o *Oto) Close() error {
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto context suspend error: %v", err)
		}
	}
	return nil
}

// callbackReader serves little-endian float32 bytes rendered one callback
// buffer at a time. It never allocates after construction.
type callbackReader struct {
	render  *renderer
	samples []float32
	encoded []byte
	pending []byte
}

func newCallbackReader(r *renderer, bufferSamples int) *callbackReader {
	return &callbackReader{
		render:  r,
		samples: make([]float32, bufferSamples),
		encoded: make([]byte, bufferSamples*bytesPerFloat32),
	}
}

// Read fills p completely, invoking the callback whenever the pending block
// is exhausted
func (c *callbackReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(c.pending) == 0 {
			fillEncoded(c.render, c.samples, c.encoded)
			c.pending = c.encoded
		}
		copied := copy(p[n:], c.pending)
		c.pending = c.pending[copied:]
		n += copied
	}
	return n, nil
}
