//go:build !malgo

// ABOUTME: Malgo stub when miniaudio is not compiled in
// ABOUTME: Provides compile-time placeholder when built without -tags malgo
package output

import (
	"fmt"
)

// Malgo output implementation (stub)
type Malgo struct{}

// NewMalgo creates a new Malgo output
func NewMalgo() Driver {
	return &Malgo{}
}

// Name returns the backend name
func (m *Malgo) Name() string { return "malgo" }

// Open initializes the device
func (m *Malgo) Open(cfg StreamConfig, cb Callback) (StreamConfig, error) {
	return cfg, fmt.Errorf("malgo support not enabled (build with -tags malgo)")
}

// Start starts the device
func (m *Malgo) Start() error {
	return fmt.Errorf("malgo support not enabled (build with -tags malgo)")
}

// Close releases resources
func (m *Malgo) Close() error {
	return nil
}
