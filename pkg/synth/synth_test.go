// ABOUTME: Tests for the Synth audio session
// ABOUTME: Fake and offline drivers cover lifecycle, error mapping, controls and rendered output
package synth

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/ahihi/fivier/pkg/audio/output"
	"github.com/maddyblue/go-dsp/fft"
)

// fakeDriver records lifecycle calls and fails on request
type fakeDriver struct {
	openErr  error
	startErr error
	closeErr error
	rate     float64 // negotiated rate override, 0 keeps the request

	cb         output.Callback
	started    bool
	closeCalls int
}

func (f *fakeDriver) Name() string { return "fake" }

func (f *fakeDriver) Open(cfg output.StreamConfig, cb output.Callback) (output.StreamConfig, error) {
	if f.openErr != nil {
		return cfg, f.openErr
	}
	f.cb = cb
	if f.rate != 0 {
		cfg.SampleRate = f.rate
	}
	return cfg, nil
}

func (f *fakeDriver) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeDriver) Close() error {
	f.closeCalls++
	return f.closeErr
}

func newOfflineSynth(t *testing.T, cfg Config) (*Synth, *output.Offline) {
	t.Helper()
	drv := output.NewOffline()
	s, err := New(drv, 256, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.Play(); err != nil {
		t.Fatalf("unexpected play error: %v", err)
	}
	return s, drv
}

func TestNewInvalidBufferSize(t *testing.T) {
	drv := &fakeDriver{}
	_, err := New(drv, 0, DefaultConfig())

	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected *EngineError, got %v", err)
	}
	if drv.closeCalls != 0 {
		t.Errorf("expected driver untouched, got %d close calls", drv.closeCalls)
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Voice1.FreqDepthRatio = 0.9

	_, err := New(&fakeDriver{}, 256, cfg)
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected *EngineError, got %v", err)
	}
}

func TestNewDeviceErrors(t *testing.T) {
	openErr := errors.New("no default device")

	tests := []struct {
		name   string
		driver *fakeDriver
		inner  error
	}{
		{"open fails", &fakeDriver{openErr: openErr}, openErr},
		{"open fails and close fails", &fakeDriver{openErr: openErr, closeErr: errors.New("busy")}, openErr},
		{"rate mismatch", &fakeDriver{rate: 48000}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.driver, 256, DefaultConfig())
			if s != nil {
				t.Error("expected nil synth on error")
			}

			var devErr *DeviceError
			if !errors.As(err, &devErr) {
				t.Fatalf("expected *DeviceError, got %v", err)
			}
			if devErr.Op != "open" {
				t.Errorf("expected op open, got %s", devErr.Op)
			}
			if devErr.Backend != "fake" {
				t.Errorf("expected backend fake, got %s", devErr.Backend)
			}
			if tt.inner != nil && !errors.Is(err, tt.inner) {
				t.Errorf("expected wrapped %v, got %v", tt.inner, err)
			}
			if tt.driver.closeCalls != 1 {
				t.Errorf("expected driver released once, got %d close calls", tt.driver.closeCalls)
			}
		})
	}
}

func TestPlayStartFailure(t *testing.T) {
	startErr := errors.New("stream refused")
	drv := &fakeDriver{startErr: startErr}

	s, err := New(drv, 256, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	err = s.Play()
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("expected *DeviceError, got %v", err)
	}
	if devErr.Op != "start" {
		t.Errorf("expected op start, got %s", devErr.Op)
	}
	if !errors.Is(err, startErr) {
		t.Errorf("expected wrapped start error, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	drv := &fakeDriver{closeErr: errors.New("device vanished")}
	s, err := New(drv, 256, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Close()
	s.Close()

	if drv.closeCalls != 1 {
		t.Errorf("expected 1 close call, got %d", drv.closeCalls)
	}
	if err := s.Play(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestSessionAccessors(t *testing.T) {
	drv := &fakeDriver{}
	s, err := New(drv, 512, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if s.Backend() != "fake" {
		t.Errorf("expected backend fake, got %s", s.Backend())
	}
	if s.BufferSize() != 512 {
		t.Errorf("expected buffer size 512, got %d", s.BufferSize())
	}
	if s.Stream().Channels != 2 || s.Stream().FramesPerBuffer != 512 {
		t.Errorf("expected stereo 512-frame stream, got %+v", s.Stream())
	}
	if s.ID().String() == "" {
		t.Error("expected session id")
	}
	if drv.cb == nil {
		t.Error("expected callback registered")
	}
}

func TestSetVolume(t *testing.T) {
	s, err := New(&fakeDriver{}, 256, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},
		{150, 100},
		{-10, 0},
		{0, 0},
	}

	for _, tt := range tests {
		s.SetVolume(tt.input)
		if got := s.Params().Volume; got != tt.expected {
			t.Errorf("SetVolume(%d): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestControlsPreserveOtherParams(t *testing.T) {
	s, err := New(&fakeDriver{}, 256, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	s.SetVolume(40)
	s.SetMuted(true)
	s.SetLimiter(false)

	p := s.Params()
	if p.Volume != 40 || !p.Muted || p.Limiter {
		t.Errorf("expected volume 40, muted, limiter off, got %+v", p)
	}
	if p.Threshold != 1.0 {
		t.Errorf("expected threshold kept at 1.0, got %v", p.Threshold)
	}
}

func TestRenderMatchesFrozenSignal(t *testing.T) {
	cfg := frozenConfig()
	s, drv := newOfflineSynth(t, cfg)

	frames := 4 * s.BufferSize()
	out, err := drv.Render(frames)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}

	for n := 0; n < frames; n++ {
		expected := frozenSample(cfg, n)
		for ch := 0; ch < 2; ch++ {
			got := float64(out[2*n+ch])
			if math.Abs(got-expected) > 1e-5 {
				t.Fatalf("frame %d channel %d: expected %v, got %v", n, ch, expected, got)
			}
		}
	}

	stats := s.Stats()
	if stats.Buffers != 4 {
		t.Errorf("expected 4 buffers, got %d", stats.Buffers)
	}
	if stats.Frames != uint64(frames) {
		t.Errorf("expected %d frames, got %d", frames, stats.Frames)
	}
	if stats.Peak <= 0 {
		t.Errorf("expected nonzero peak, got %v", stats.Peak)
	}
}

func TestRenderAppliesVolumeAndMute(t *testing.T) {
	cfg := frozenConfig()
	s, drv := newOfflineSynth(t, cfg)

	s.SetVolume(50)
	out, err := drv.Render(256)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	for n := 0; n < 256; n++ {
		expected := 0.5 * frozenSample(cfg, n)
		if math.Abs(float64(out[2*n])-expected) > 1e-5 {
			t.Fatalf("frame %d: expected %v at half volume, got %v", n, expected, out[2*n])
		}
	}

	s.SetMuted(true)
	out, err = drv.Render(256)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d: expected silence while muted, got %v", i, v)
		}
	}
}

func TestLimiter(t *testing.T) {
	cfg := frozenConfig()
	for _, v := range []*VoiceConfig{&cfg.Voice1, &cfg.Voice2} {
		v.AmpMin = 2
		v.AmpMax = 2
	}
	cfg.DryGain = 1

	tests := []struct {
		name    string
		limiter bool
		overOne bool
	}{
		{"enabled", true, false},
		{"disabled", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, drv := newOfflineSynth(t, cfg)
			s.SetLimiter(tt.limiter)

			out, err := drv.Render(1024)
			if err != nil {
				t.Fatalf("unexpected render error: %v", err)
			}

			var peak float64
			for _, v := range out {
				peak = math.Max(peak, math.Abs(float64(v)))
			}
			if (peak > 1) != tt.overOne {
				t.Errorf("expected peak above 1: %v, got peak %v", tt.overOne, peak)
			}
		})
	}
}

func TestRenderSpectrumPeaks(t *testing.T) {
	cfg := frozenConfig()
	_, drv := newOfflineSynth(t, cfg)

	const frames = 16384
	out, err := drv.Render(frames)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}

	left := make([]float64, frames)
	for n := range left {
		left[n] = float64(out[2*n])
	}
	spectrum := fft.FFTReal(left)
	binHz := cfg.SampleRate / frames

	peakIn := func(lo, hi float64) float64 {
		best, bestMag := 0, 0.0
		for bin := int(lo / binHz); bin <= int(hi/binHz); bin++ {
			if mag := cmplx.Abs(spectrum[bin]); mag > bestMag {
				best, bestMag = bin, mag
			}
		}
		return float64(best) * binHz
	}

	tests := []struct {
		name     string
		lo, hi   float64
		expected float64
	}{
		{"voice1", 100, 180, 140},
		{"voice2", 180, 260, 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := peakIn(tt.lo, tt.hi)
			if math.Abs(got-tt.expected) > 3 {
				t.Errorf("expected peak near %vHz, got %vHz", tt.expected, got)
			}
		})
	}
}
