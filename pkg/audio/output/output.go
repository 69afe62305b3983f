// ABOUTME: Audio driver interface definition
// ABOUTME: Common callback-driven interface for audio playback backends
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"
)

const bytesPerFloat32 = 4

// Result tells the driver whether to keep invoking the callback
type Result int

const (
	// Continue keeps the stream running
	Continue Result = iota
	// Abort stops invoking the callback; the stream plays silence afterwards
	Abort
)

// Callback fills out with frames interleaved frames of float32 samples.
// It runs on the driver's real-time thread and must not block.
type Callback func(out []float32, frames int) Result

// StreamConfig describes a requested or negotiated output stream
type StreamConfig struct {
	SampleRate      float64
	Channels        int
	FramesPerBuffer int
	Latency         time.Duration // device-suggested output latency
	Device          string        // device name, filled in by Open
}

// BufferDuration returns the time covered by one callback buffer
func (c StreamConfig) BufferDuration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(c.FramesPerBuffer) / c.SampleRate * float64(time.Second))
}

// Driver represents an audio output device
type Driver interface {
	// Name returns the backend name
	Name() string

	// Open claims the default output device, negotiates the stream and
	// registers cb. The stream is not started. It returns the negotiated config.
	Open(cfg StreamConfig, cb Callback) (StreamConfig, error)

	// Start starts the transport
	Start() error

	// Close releases the device. It is safe to call after a failed Open.
	Close() error
}

// ErrNotOpen is returned by Start when Open has not succeeded
var ErrNotOpen = errors.New("output not opened")

// Backends lists the names accepted by New
func Backends() []string {
	return []string{"oto", "portaudio", "malgo"}
}

// New creates the driver for a backend name. An empty name selects oto.
func New(name string) (Driver, error) {
	switch name {
	case "", "oto":
		return NewOto(), nil
	case "portaudio":
		return NewPortAudio(), nil
	case "malgo":
		return NewMalgo(), nil
	default:
		return nil, fmt.Errorf("unknown audio backend: %s (supported: %v)", name, Backends())
	}
}

// renderer adapts a Callback to a backend's buffer. It is only touched by the
// audio thread.
type renderer struct {
	cb       Callback
	channels int
	aborted  bool
}

func newRenderer(cb Callback, channels int) *renderer {
	if channels <= 0 {
		channels = 1
	}
	return &renderer{cb: cb, channels: channels}
}

// fill invokes the callback for out, or writes silence once it has aborted
func (r *renderer) fill(out []float32) {
	if r.aborted || r.cb == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	if r.cb(out, len(out)/r.channels) == Abort {
		r.aborted = true
	}
}

// fillEncoded renders into out as little-endian float32, at most
// len(scratch) samples per callback. scratch must hold whole frames.
func fillEncoded(r *renderer, scratch []float32, out []byte) {
	if len(scratch) == 0 {
		clear(out)
		return
	}
	for len(out) > 0 {
		n := min(len(scratch), len(out)/bytesPerFloat32)
		block := scratch[:n]
		r.fill(block)
		for i, s := range block {
			binary.LittleEndian.PutUint32(out[i*bytesPerFloat32:], math.Float32bits(s))
		}
		out = out[n*bytesPerFloat32:]
	}
}
