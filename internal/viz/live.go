package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	width           = 80
	height          = 40
	historyCapacity = 600
	DefaultFPS      = 60

	gravityFactor = 1.25
	gravityFloor  = 1e-6
	gravityKick   = 1e-4
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the interactive view of a single universe. Each tick runs one
// frame of the simulator (spawners, then sub-steps) and redraws the canvas.
type Model struct {
	sim      *sim.Simulator
	universe *physics.Universe
	fountain *sim.Fountain
	cfg      sim.Config
	name     string

	t             float64
	canvas        *Canvas
	running       bool
	fps           int
	measuredFPS   float64
	lastTick      time.Time
	energyHistory []float64
	showHelp      bool
	theme         int

	recording bool
	recorder  *Recorder
	gifPath   string
	message   string
}

// NewModel builds a live view. fountain may be nil, in which case the f key
// does nothing.
func NewModel(name string, u *physics.Universe, fountain *sim.Fountain, cfg sim.Config) Model {
	s := sim.New(u)
	if fountain != nil {
		s.AddSpawner(fountain)
	}
	if cfg.SubSteps < 1 {
		cfg.SubSteps = 1
	}
	return Model{
		sim:           s,
		universe:      u,
		fountain:      fountain,
		cfg:           cfg,
		name:          name,
		canvas:        NewCanvas(width, height),
		running:       true,
		fps:           DefaultFPS,
		energyHistory: make([]float64, 0, historyCapacity),
		theme:         themeIndex(CurrentTheme.Name),
		recorder:      &Recorder{},
		gifPath:       "simulation.gif",
	}
}

// WithFPS sets the redraw rate. Non-positive values keep the default.
func (m Model) WithFPS(fps int) Model {
	if fps > 0 {
		m.fps = fps
	}
	return m
}

// WithGIFPath sets where the g key writes its recording.
func (m Model) WithGIFPath(path string) Model {
	if path != "" {
		m.gifPath = path
	}
	return m
}

func (m Model) Time() float64               { return m.t }
func (m Model) Running() bool               { return m.running }
func (m Model) EnergyHistory() []float64    { return m.energyHistory }
func (m Model) Universe() *physics.Universe { return m.universe }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "s":
			if !m.running {
				m.step()
			}
		case "a":
			id := m.universe.AddRandom()
			m.message = fmt.Sprintf("added particle %d", id)
		case "c":
			m.universe.Clear()
			m.energyHistory = m.energyHistory[:0]
			m.message = "cleared"
		case "f":
			if m.fountain != nil {
				m.fountain.Toggle()
				m.message = "fountain " + onOff(m.fountain.Enabled)
			}
		case "+", "=":
			m.adjustGravity(true)
		case "-", "_":
			m.adjustGravity(false)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			CurrentTheme = Themes[m.theme]
			m.message = "theme " + CurrentTheme.Name
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.message = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if d := now.Sub(m.lastTick).Seconds(); d > 0 {
				m.measuredFPS = 1 / d
			}
		}
		m.lastTick = now
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances one frame and records the kinetic energy.
func (m *Model) step() {
	m.sim.Step(m.t, m.cfg)
	m.t += m.cfg.Dt

	m.energyHistory = append(m.energyHistory, metrics.Kinetic(m.universe.Particles()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// adjustGravity scales gravity by gravityFactor. From zero it starts at
// gravityKick, and values below gravityFloor snap back to zero.
func (m *Model) adjustGravity(up bool) {
	g := m.universe.Gravity
	switch {
	case up && g == 0:
		g = gravityKick
	case up:
		g *= gravityFactor
	default:
		g /= gravityFactor
		if g < gravityFloor && g > -gravityFloor {
			g = 0
		}
	}
	m.universe.SetGravity(g)
	m.message = fmt.Sprintf("gravity %.3g", g)
}

func (m *Model) stopRecording() {
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.message = "gif: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", n, m.gifPath)
}

func (m *Model) draw() {
	DrawUniverse(m.canvas, m.universe)
}

// View renders the TUI interface.
func (m Model) View() string {
	theme := CurrentTheme
	st := NewStyles(theme)
	canvasView := canvasStyle.Render(m.canvas.Render(theme))

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), theme.Primary, theme.Secondary) + "\n\n")

	switch {
	case m.recording:
		s.WriteString(st.Recording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Foreground(theme.Secondary).Render(chart) + "\n")
	}

	reg := m.universe.Constraints()
	rows := []struct{ label, value string }{
		{"Time", fmt.Sprintf("%.0f", m.t)},
		{"Particles", fmt.Sprintf("%d", m.universe.Len())},
		{"Fixed", fmt.Sprintf("%d", reg.NumFixed())},
		{"Links", fmt.Sprintf("%d", reg.NumLinks())},
		{"Gravity", fmt.Sprintf("%.3g", m.universe.Gravity)},
		{"Sub-steps", fmt.Sprintf("%d × %.3g", m.cfg.SubSteps, m.cfg.Dt/float64(m.cfg.SubSteps))},
		{"FPS", fmt.Sprintf("%.0f / %d", m.measuredFPS, m.fps)},
	}
	if m.fountain != nil {
		rows = append(rows, struct{ label, value string }{"Fountain", onOff(m.fountain.Enabled)})
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r.label) + valueStyle.Render(r.value) + "\n")
	}

	if m.message != "" {
		s.WriteString("\n" + st.Hint.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause A:Add C:Clear\nF:Fountain +/-:Gravity\nT:Theme G:Record ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  S        - Single frame (paused)    ║
║  A        - Add a random particle    ║
║  C        - Clear the universe       ║
║  F        - Toggle the fountain      ║
║  + / -    - Raise/lower gravity      ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
