// ABOUTME: Control-rate parameters published to the audio thread
// ABOUTME: Immutable snapshots swapped atomically, so the callback never waits
package synth

// Params are the runtime controls applied at the output stage
type Params struct {
	Volume    int     // 0-100
	Muted     bool    // silence without losing Volume
	Limiter   bool    // hard-clip the output to [-Threshold, Threshold]
	Threshold float64 // limiter threshold
}

// DefaultParams returns full volume with the limiter at 0dBFS
func DefaultParams() Params {
	return Params{
		Volume:    100,
		Limiter:   true,
		Threshold: 1.0,
	}
}

// Gain returns the linear output multiplier
func (p Params) Gain() float64 {
	if p.Muted {
		return 0.0
	}
	return float64(clampVolume(p.Volume)) / 100.0
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
