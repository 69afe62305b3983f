// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and the channels it drives the synth through
package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ParamChangeMsg carries the full parameter state after a key press
type ParamChangeMsg struct {
	Volume  int
	Muted   bool
	Limiter bool
}

// Control holds channels for parameter changes and shutdown
type Control struct {
	Changes chan ParamChangeMsg
	Quit    chan struct{} // closed once on shutdown request

	quitOnce sync.Once
}

// NewControl creates a new control handler
func NewControl() *Control {
	return &Control{
		Changes: make(chan ParamChangeMsg, 10),
		Quit:    make(chan struct{}),
	}
}

// RequestQuit closes Quit. Later calls are no-ops.
func (c *Control) RequestQuit() {
	c.quitOnce.Do(func() { close(c.Quit) })
}

// publish sends a change unless shutdown is underway
func (c *Control) publish(msg ParamChangeMsg) {
	select {
	case c.Changes <- msg:
	case <-c.Quit:
	}
}

// NewModel creates a new TUI model with the given starting parameters
func NewModel(ctrl *Control, volume int, muted, limiter bool) Model {
	return Model{
		volume:  volume,
		muted:   muted,
		limiter: limiter,
		ctrl:    ctrl,
	}
}

// Run creates the TUI program. The caller runs it and forwards StatusMsg
// values with Send.
func Run(model Model) (*tea.Program, error) {
	p := tea.NewProgram(model, tea.WithAltScreen())
	return p, nil
}
