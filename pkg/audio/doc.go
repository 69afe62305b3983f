// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Sample, Format and frame helpers
// Package audio provides the fundamental types shared by the synthesizer.
//
// This package defines:
//   - Sample: one float32 PCM value in an interleaved stereo stream
//   - Format: sample rate, channel count and bit depth of an output stream
//
// Everything is interleaved stereo: index 0 of a frame is Left, index 1 is Right.
//
// Example:
//
//	format := audio.DefaultFormat()
//	delayFrames := format.SecondsToFrames(2.2) // 97020 at 44100Hz
package audio
