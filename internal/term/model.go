// Package term plays a generator in the terminal with bubbletea.
package term

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hexweave/internal/core"
	"hexweave/internal/ui"
)

// Generator is what the terminal model drives.
type Generator interface {
	core.Sim
	core.TextProvider
	core.StatusProvider
}

type tickMsg time.Time

// Model steps a generator on a timer and shows its text rendering.
type Model struct {
	gen      Generator
	seed     int64
	interval time.Duration
	perTick  int

	paused bool
	frame  string
	status core.Status
}

// New returns a model that performs perTick collapses every interval.
func New(gen Generator, seed int64, interval time.Duration, perTick int) Model {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	if perTick <= 0 {
		perTick = 1
	}
	m := Model{gen: gen, seed: seed, interval: interval, perTick: perTick}
	m.gen.Reset(seed)
	m.refresh()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) refresh() {
	m.frame = m.gen.Text()
	m.status = m.gen.Status()
}

func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		if st := m.gen.Status(); st.Done || st.Failed {
			break
		}
		m.gen.Step()
	}
	m.refresh()
}

// Init starts the step timer.
func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles keys and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "n":
			m.advance(1)
		case "r":
			m.gen.Reset(m.seed)
			m.refresh()
		case "s":
			m.seed++
			m.gen.Reset(m.seed)
			m.refresh()
		}
		return m, nil
	case tickMsg:
		if !m.paused {
			m.advance(m.perTick)
		}
		return m, m.tick()
	}
	return m, nil
}

// View draws the frame with a status line and key help.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString(strings.Repeat("─", 40) + "\n")
	b.WriteString(ui.StatusLine(m.status))
	if m.paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: space pause · n step · r restart · s next seed · q quit\n", m.gen.Name())
	return b.String()
}

// Frame returns the last rendered generator text.
func (m Model) Frame() string { return m.frame }

// Status returns the last observed generator status.
func (m Model) Status() core.Status { return m.status }

// Paused reports whether the timer is ignored.
func (m Model) Paused() bool { return m.paused }

// Seed is the seed of the current run.
func (m Model) Seed() int64 { return m.seed }

// Run blocks until the user quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
