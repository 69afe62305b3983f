// ABOUTME: Bubbletea model for the synth TUI
// ABOUTME: Defines display state, key handling and status updates
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ahihi/fivier/internal/version"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const volumeStep = 5

// Model represents the TUI state
type Model struct {
	// Session
	sessionID  string
	backend    string
	device     string
	sampleRate float64
	channels   int
	bufferSize int
	latency    time.Duration

	// Parameters
	volume  int
	muted   bool
	limiter bool

	// Stats
	buffers uint64
	frames  uint64
	peak    float32

	// Runtime
	goroutines int
	memAlloc   uint64

	quitting bool
	ctrl     *Control

	// Dimensions
	width  int
	height int
}

// StatusMsg updates TUI state. Zero and nil fields are left unchanged.
type StatusMsg struct {
	SessionID  string
	Backend    string
	Device     string
	SampleRate float64
	Channels   int
	BufferSize int
	Latency    time.Duration

	Volume  *int
	Muted   *bool
	Limiter *bool

	Buffers uint64
	Frames  uint64
	Peak    float32

	Goroutines int
	MemAlloc   uint64
}

// ParamsStatus builds a StatusMsg carrying only the parameter state
func ParamsStatus(volume int, muted, limiter bool) StatusMsg {
	return StatusMsg{Volume: &volume, Muted: &muted, Limiter: &limiter}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Stopping synth...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓:Volume  m:Mute  l:Limiter  q:Quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderHeader() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", version.Product, version.Version)))
	b.WriteString("\n\n")

	field(&b, "Session: ", m.sessionID)

	output := m.backend
	if m.device != "" {
		output = fmt.Sprintf("%s (%s)", m.backend, m.device)
	}
	field(&b, "Output:  ", output)

	if m.sampleRate > 0 {
		field(&b, "Format:  ", fmt.Sprintf("%.0fHz %s float32, %d frames/buffer, %v latency",
			m.sampleRate, channelName(m.channels), m.bufferSize, m.latency.Round(100*time.Microsecond)))
	}

	return b.String()
}

func (m Model) renderControls() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Volume:  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%", renderBar(m.volume, 100, 20), m.volume)))
	if m.muted {
		b.WriteString(" ")
		b.WriteString(warnStyle.Render("MUTED"))
	}
	b.WriteString("\n")

	field(&b, "Limiter: ", onOff(m.limiter))

	return b.String()
}

func (m Model) renderStats() string {
	var b strings.Builder

	field(&b, "Buffers: ", fmt.Sprintf("%d", m.buffers))

	played := ""
	if m.sampleRate > 0 {
		elapsed := time.Duration(float64(m.frames) / m.sampleRate * float64(time.Second))
		played = fmt.Sprintf(" (%v)", elapsed.Round(time.Second))
	}
	field(&b, "Frames:  ", fmt.Sprintf("%d%s", m.frames, played))

	peakPct := int(math.Min(float64(m.peak), 1) * 100)
	b.WriteString(headerStyle.Render("Peak:    "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %s", renderBar(peakPct, 100, 20), peakDB(m.peak))))
	b.WriteString("\n")

	if m.goroutines > 0 {
		field(&b, "Runtime: ", fmt.Sprintf("%d goroutines, %.1f MB", m.goroutines, float64(m.memAlloc)/(1024*1024)))
	}

	return b.String()
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.ctrl != nil {
			m.ctrl.RequestQuit()
		}
		return m, tea.Quit
	case "up":
		m.volume = min(m.volume+volumeStep, 100)
	case "down":
		m.volume = max(m.volume-volumeStep, 0)
	case "m":
		m.muted = !m.muted
	case "l":
		m.limiter = !m.limiter
	default:
		return m, nil
	}

	if m.ctrl != nil {
		m.ctrl.publish(ParamChangeMsg{Volume: m.volume, Muted: m.muted, Limiter: m.limiter})
	}
	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.SessionID != "" {
		m.sessionID = msg.SessionID
	}
	if msg.Backend != "" {
		m.backend = msg.Backend
		m.device = msg.Device
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.bufferSize = msg.BufferSize
		m.latency = msg.Latency
	}
	if msg.Volume != nil {
		m.volume = *msg.Volume
	}
	if msg.Muted != nil {
		m.muted = *msg.Muted
	}
	if msg.Limiter != nil {
		m.limiter = *msg.Limiter
	}
	if msg.Buffers != 0 {
		m.buffers = msg.Buffers
		m.frames = msg.Frames
		m.peak = msg.Peak
	}
	if msg.Goroutines != 0 {
		m.goroutines = msg.Goroutines
		m.memAlloc = msg.MemAlloc
	}
}

// Utility functions
func field(b *strings.Builder, label, value string) {
	b.WriteString(headerStyle.Render(label))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

func renderBar(value, max, width int) string {
	filled := (value * width) / max
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func peakDB(peak float32) string {
	if peak <= 0 {
		return "-inf dBFS"
	}
	return fmt.Sprintf("%.1f dBFS", 20*math.Log10(float64(peak)))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
