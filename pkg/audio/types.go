// ABOUTME: Audio type definitions
// ABOUTME: Defines the sample type, stream format and shared constants
package audio

import "math"

const (
	// DefaultSampleRate is the fixed output rate of the synthesizer
	DefaultSampleRate = 44100

	// DefaultChannels is the interleaved stereo channel count
	DefaultChannels = 2

	// Left and Right are channel indices within an interleaved frame
	Left  = 0
	Right = 1
)

// Tau is one full turn in radians
const Tau = 2 * math.Pi

// Sample is one 32-bit float PCM value, nominally in [-1, 1]
type Sample = float32

// Format describes an output stream format
type Format struct {
	SampleRate float64
	Channels   int
	BitDepth   int // always 32 (float) for this synthesizer
}

// DefaultFormat returns the stereo float32 format at the default rate
func DefaultFormat() Format {
	return Format{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   32,
	}
}

// FramesToSamples converts a stereo frame count to interleaved samples
func (f Format) FramesToSamples(frames int) int {
	return frames * f.Channels
}

// SecondsToFrames returns the number of whole frames in the given duration
func (f Format) SecondsToFrames(seconds float64) int {
	return int(seconds * f.SampleRate)
}
