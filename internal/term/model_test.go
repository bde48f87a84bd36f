package term

import (
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"hexweave/internal/core"
)

// countdown finishes after a fixed number of steps.
type countdown struct {
	total  int
	steps  int
	seed   int64
	resets int
}

func (c *countdown) Name() string { return "countdown" }
func (c *countdown) Size() core.Size { return core.Size{W: c.total, H: 1} }
func (c *countdown) Cells() []uint8 { return make([]uint8, c.total) }
func (c *countdown) Reset(seed int64) {
	c.seed, c.steps = seed, 0
	c.resets++
}
func (c *countdown) Step() { c.steps++ }
func (c *countdown) Text() string { return strings.Repeat("#", c.steps) + "\n" }
func (c *countdown) Status() core.Status {
	return core.Status{Seed: c.seed, Attempt: 1, Collapsed: c.steps, Total: c.total, Done: c.steps >= c.total}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestTicksAdvanceUntilDone(t *testing.T) {
	gen := &countdown{total: 5}
	m := New(gen, 9, time.Millisecond, 2)
	if gen.resets != 1 || gen.seed != 9 {
		t.Fatalf("New should reset with the seed, got resets=%d seed=%d", gen.resets, gen.seed)
	}
	for i := 0; i < 5; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if gen.steps != 5 {
		t.Fatalf("expected the generator to stop at 5 steps, got %d", gen.steps)
	}
	if m.Frame() != "#####\n" || !m.Status().Done {
		t.Fatalf("unexpected frame %q status %+v", m.Frame(), m.Status())
	}
}

func TestPauseAndSingleStep(t *testing.T) {
	gen := &countdown{total: 10}
	m := New(gen, 1, time.Millisecond, 1)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.Paused() {
		t.Fatal("space should pause")
	}
	m, _ = update(t, m, tickMsg(time.Now()))
	if gen.steps != 0 {
		t.Fatal("paused model stepped on tick")
	}
	m, _ = update(t, m, runes("n"))
	if gen.steps != 1 || m.Status().Collapsed != 1 {
		t.Fatalf("n should step once, got %d", gen.steps)
	}
	if !strings.Contains(m.View(), "[paused]") {
		t.Fatal("view should mark the pause")
	}
}

func TestRestartAndReseed(t *testing.T) {
	gen := &countdown{total: 10}
	m := New(gen, 4, time.Millisecond, 3)
	m, _ = update(t, m, tickMsg(time.Now()))
	m, _ = update(t, m, runes("r"))
	if gen.steps != 0 || gen.seed != 4 {
		t.Fatalf("r should restart with the same seed, got steps=%d seed=%d", gen.steps, gen.seed)
	}
	m, _ = update(t, m, runes("s"))
	if m.Seed() != 5 || gen.seed != 5 {
		t.Fatalf("s should move to the next seed, got %d", gen.seed)
	}
	if !strings.Contains(m.View(), "seed "+strconv.Itoa(5)) {
		t.Fatalf("view missing seed:\n%s", m.View())
	}
}

func TestQuitKeys(t *testing.T) {
	m := New(&countdown{total: 1}, 1, 0, 0)
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, msg)
		if cmd == nil {
			t.Fatalf("%v should quit", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v returned a non-quit command", msg)
		}
	}
}
