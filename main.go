// ABOUTME: Entry point for the fivier synthesizer
// ABOUTME: Parses CLI flags, opens the audio session and runs the operator interface
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ahihi/fivier/internal/ui"
	"github.com/ahihi/fivier/internal/version"
	"github.com/ahihi/fivier/pkg/audio/output"
	"github.com/ahihi/fivier/pkg/synth"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	backend     = flag.String("backend", "oto", "Audio backend: oto, portaudio or malgo")
	bufferSize  = flag.Int("buffer-size", 256, "Frames per audio callback")
	fundamental = flag.Float64("fundamental", 140, "Base frequency in Hz")
	delay       = flag.Float64("delay", 2.2, "Delay time in seconds")
	volume      = flag.Int("volume", 100, "Initial volume (0-100)")
	noLimiter   = flag.Bool("no-limiter", false, "Disable the output limiter")
	logFile     = flag.String("log-file", "fivier.log", "Log file path")
	noTUI       = flag.Bool("no-tui", false, "Disable TUI, use streaming logs and a line console instead")
)

func main() {
	flag.Parse()

	// TUI needs a terminal on stdin
	useTUI := !*noTUI && term.IsTerminal(int(os.Stdin.Fd()))

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Streaming logs mode: log to both stdout and file
		log.SetOutput(io.MultiWriter(os.Stdout, f))
	}

	log.Printf("Starting %s %s by %s", version.Product, version.Version, version.Manufacturer)

	driver, err := output.New(*backend)
	if err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}

	cfg := synth.DefaultConfig()
	cfg.Fundamental = *fundamental
	cfg.DelaySeconds = *delay

	s, err := synth.New(driver, *bufferSize, cfg)
	if err != nil {
		log.Fatalf("Failed to create synth: %v", err)
	}
	defer s.Close()

	s.SetVolume(*volume)
	s.SetLimiter(!*noLimiter)

	if err := s.Play(); err != nil {
		s.Close()
		log.Fatalf("Failed to start playback: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := ui.NewControl()
	params := s.Params()

	// TUI setup
	var tuiProg *tea.Program
	tuiDone := make(chan struct{})
	if useTUI {
		tuiProg, err = ui.Run(ui.NewModel(ctrl, params.Volume, params.Muted, params.Limiter))
		if err != nil {
			s.Close()
			log.Fatalf("Failed to start TUI: %v", err)
		}
		go func() {
			if _, err := tuiProg.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			ctrl.RequestQuit()
			close(tuiDone)
		}()
	} else {
		close(tuiDone)
		log.Printf("TUI disabled - type q and Enter to quit")
		go func() {
			if err := ui.RunConsole(os.Stdin, os.Stdout, ctrl); err != nil {
				log.Printf("Console error: %v", err)
			}
		}()
	}

	// Helper to update TUI
	updateTUI := func(msg ui.StatusMsg) {
		if tuiProg != nil {
			tuiProg.Send(msg)
		}
	}

	stream := s.Stream()
	updateTUI(ui.StatusMsg{
		SessionID:  s.ID().String(),
		Backend:    s.Backend(),
		Device:     stream.Device,
		SampleRate: stream.SampleRate,
		Channels:   stream.Channels,
		BufferSize: s.BufferSize(),
		Latency:    stream.Latency,
	})

	loopCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(loopCtx)
	g.Go(func() error { return handleParamControl(gctx, s, ctrl, updateTUI) })
	if tuiProg != nil {
		g.Go(func() error { return statsUpdateLoop(gctx, s, updateTUI) })
	}

	// Wait for quit from the operator or OS
	select {
	case <-ctrl.Quit:
		log.Printf("Received quit signal from operator")
	case <-ctx.Done():
		log.Printf("Shutdown signal received")
		ctrl.RequestQuit()
		if tuiProg != nil {
			tuiProg.Quit()
		}
	}

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Control loop error: %v", err)
	}

	// Let the TUI restore the terminal before exiting
	<-tuiDone

	s.Close()
	log.Printf("Synth stopped")
}

// handleParamControl applies parameter changes from the operator interface
// and echoes the resulting state back so the TUI shows what the synth uses
func handleParamControl(ctx context.Context, s *synth.Synth, ctrl *ui.Control, updateTUI func(ui.StatusMsg)) error {
	for {
		select {
		case change := <-ctrl.Changes:
			p := s.Params()
			if change.Volume != p.Volume {
				s.SetVolume(change.Volume)
			}
			if change.Muted != p.Muted {
				s.SetMuted(change.Muted)
			}
			if change.Limiter != p.Limiter {
				s.SetLimiter(change.Limiter)
			}
			p = s.Params()
			updateTUI(ui.ParamsStatus(p.Volume, p.Muted, p.Limiter))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// statsUpdateLoop periodically updates TUI with playback statistics
func statsUpdateLoop(ctx context.Context, s *synth.Synth, updateTUI func(ui.StatusMsg)) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	// Use a slower ticker for expensive runtime stats to avoid GC pauses
	runtimeStatsTicker := time.NewTicker(2 * time.Second)
	defer runtimeStatsTicker.Stop()

	var lastGoroutines int
	var lastMemAlloc uint64

	for {
		select {
		case <-runtimeStatsTicker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			lastGoroutines = runtime.NumGoroutine()
			lastMemAlloc = m.Alloc

		case <-ticker.C:
			stats := s.Stats()
			updateTUI(ui.StatusMsg{
				Buffers:    stats.Buffers,
				Frames:     stats.Frames,
				Peak:       stats.Peak,
				Goroutines: lastGoroutines,
				MemAlloc:   lastMemAlloc,
			})

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
