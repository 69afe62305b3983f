// ABOUTME: Fixed-length circular delay line
// ABOUTME: One physical line shared by both interleaved stereo channels
package dsp

import "github.com/ahihi/fivier/pkg/audio"

// Delay is a ring buffer whose read position is the oldest stored sample
type Delay struct {
	buffer     []audio.Sample
	writeIndex int
}

// NewDelay creates a delay of delayFrames stereo frames.
// The buffer holds 2*delayFrames slots because it is advanced once per
// interleaved sample, not once per frame.
func NewDelay(delayFrames int) *Delay {
	size := 2 * delayFrames
	if size < 1 {
		size = 1
	}
	return &Delay{
		buffer: make([]audio.Sample, size),
	}
}

// Read returns the sample about to be overwritten by the next Advance
func (d *Delay) Read() audio.Sample {
	return d.buffer[d.writeIndex]
}

// Advance stores input and moves the write index forward.
// Call Read first within a step, otherwise the wet signal is the dry one.
func (d *Delay) Advance(input audio.Sample) {
	d.buffer[d.writeIndex] = input
	d.writeIndex++
	if d.writeIndex >= len(d.buffer) {
		d.writeIndex = 0
	}
}

// Len returns the buffer length in samples
func (d *Delay) Len() int {
	return len(d.buffer)
}
