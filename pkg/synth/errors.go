// ABOUTME: Error types for the synthesizer
// ABOUTME: DeviceError wraps driver failures, EngineError flags bad engine state
package synth

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Play after Close
var ErrClosed = errors.New("synth closed")

// DeviceError wraps any failure reported by the audio driver
type DeviceError struct {
	Backend string // driver name, e.g. "oto"
	Op      string // "open" or "start"
	Err     error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s device error during %s: %v", e.Backend, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// EngineError reports an engine configuration or invariant violation
type EngineError struct {
	Reason string
}

func (e *EngineError) Error() string {
	return "engine error: " + e.Reason
}
