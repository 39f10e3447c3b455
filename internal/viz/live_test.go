package viz

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

func newTestModel(t *testing.T, n int, fountain bool) Model {
	t.Helper()
	rnd := rand.New(rand.NewSource(1))
	u := physics.New(n, rnd)
	var f *sim.Fountain
	if fountain {
		f = sim.NewFountain(100, 10, rnd)
	}
	return NewModel("test", u, f, sim.Config{Dt: 16, SubSteps: 4})
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickAdvances(t *testing.T) {
	m := newTestModel(t, 5, false)

	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	if m.Time() != 32 {
		t.Errorf("expected t=32 after two frames, got %v", m.Time())
	}
	if len(m.EnergyHistory()) != 2 {
		t.Errorf("expected 2 energy samples, got %d", len(m.EnergyHistory()))
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, 5, false)

	m = update(m, key(" "))
	if m.Running() {
		t.Fatal("expected paused model")
	}
	m = update(m, TickMsg(time.Now()))
	if m.Time() != 0 {
		t.Errorf("paused model advanced to t=%v", m.Time())
	}

	m = update(m, key("s"))
	if m.Time() != 16 {
		t.Errorf("single step should advance one frame, got t=%v", m.Time())
	}
}

func TestModelAddAndClear(t *testing.T) {
	m := newTestModel(t, 3, false)

	m = update(m, key("a"))
	if m.Universe().Len() != 4 {
		t.Errorf("expected 4 particles, got %d", m.Universe().Len())
	}

	m = update(m, key("c"))
	if m.Universe().Len() != 0 {
		t.Errorf("expected empty universe, got %d", m.Universe().Len())
	}
}

func TestModelGravity(t *testing.T) {
	m := newTestModel(t, 0, false)
	m.Universe().SetGravity(0)

	m = update(m, key("+"))
	if g := m.Universe().Gravity; g != gravityKick {
		t.Errorf("expected gravity kick %v, got %v", gravityKick, g)
	}
	m = update(m, key("+"))
	if g := m.Universe().Gravity; g <= gravityKick {
		t.Errorf("expected gravity above %v, got %v", gravityKick, g)
	}

	for i := 0; i < 100; i++ {
		m = update(m, key("-"))
	}
	if g := m.Universe().Gravity; g != 0 {
		t.Errorf("expected gravity to snap to zero, got %v", g)
	}
}

func TestModelFountainToggle(t *testing.T) {
	m := newTestModel(t, 0, true)
	if !m.fountain.Enabled {
		t.Fatal("fountain should start enabled")
	}
	m = update(m, key("f"))
	if m.fountain.Enabled {
		t.Error("expected fountain disabled")
	}

	// no fountain: key is ignored
	m = newTestModel(t, 0, false)
	m = update(m, key("f"))
	if m.message != "" {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestModelThemeCycle(t *testing.T) {
	saved := CurrentTheme
	defer func() { CurrentTheme = saved }()

	m := newTestModel(t, 0, false)
	before := CurrentTheme.Name
	m = update(m, key("t"))
	if CurrentTheme.Name == before {
		t.Errorf("theme did not change from %s", before)
	}
	if got := NewStyles(CurrentTheme).Running.GetForeground(); got != CurrentTheme.Success {
		t.Errorf("running status not restyled: got %v, want %v", got, CurrentTheme.Success)
	}
}

func TestNewStylesFollowTheme(t *testing.T) {
	for _, theme := range Themes {
		st := NewStyles(theme)
		checks := []struct {
			name string
			got  lipgloss.TerminalColor
			want lipgloss.Color
		}{
			{"running", st.Running.GetForeground(), theme.Success},
			{"paused", st.Paused.GetForeground(), theme.Warning},
			{"recording", st.Recording.GetForeground(), theme.Error},
			{"hint", st.Hint.GetForeground(), theme.Muted},
		}
		for _, c := range checks {
			if c.got != c.want {
				t.Errorf("%s: %s = %v, want %v", theme.Name, c.name, c.got, c.want)
			}
		}
	}
}

func TestModelRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.gif")
	m := newTestModel(t, 2, false).WithGIFPath(path)

	m = update(m, key("g"))
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	if m.recorder.Len() != 2 {
		t.Fatalf("expected 2 captured frames, got %d", m.recorder.Len())
	}
	m = update(m, key("g"))
	if m.recording {
		t.Error("recording should stop")
	}
	if !strings.Contains(m.message, "saved 2 frames") {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, 3, true)
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))

	view := m.View()
	for _, want := range []string{"Particles", "Gravity", "Fountain", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, 0, false)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWithFPS(t *testing.T) {
	m := newTestModel(t, 0, false)
	if m.WithFPS(0).fps != DefaultFPS {
		t.Error("zero fps should keep the default")
	}
	if m.WithFPS(30).fps != 30 {
		t.Error("fps not applied")
	}
}
