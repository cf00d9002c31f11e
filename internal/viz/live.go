package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/control"
	"github.com/P4GAN/PhysicsSims/internal/metrics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

const (
	width           = 80
	height          = 24
	minWidth        = 20
	minHeight       = 8
	statsWidth      = 45
	canvasPadX      = 2
	canvasPadY      = 1
	historyCapacity = 600
	tickRate        = 60

	// Strain at which the tension meter is full.
	tensionFull = 0.5
)

var substepChoices = []int{1, 4, 16, 32}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live rope view: the stepper, the pointer drag feeding it and
// the braille canvas it draws on.
type Model struct {
	cfg     *config.Config
	stepper *sim.Stepper
	drag    *control.Drag
	mapping viewport.Mapping
	canvas  *Canvas
	frame   sim.Frame
	epoch   time.Time

	running  bool
	showHelp bool
	theme    Theme
	styles   styles

	energyHistory []float64
	energy        metrics.Breakdown

	tension    progress.Model
	tensionSpr harmonica.Spring
	tensionPos float64
	tensionVel float64

	err error
}

// NewModel builds a live view for cfg on a canvas of the default size.
func NewModel(cfg *config.Config) (Model, error) {
	stepper, err := cfg.NewStepper()
	if err != nil {
		return Model{}, err
	}
	canvas := NewCanvas(width, height)
	mapping, err := viewport.New(cfg.World.SimWidth, cfg.World.SimHeight, float64(canvas.DotsWide()), float64(canvas.DotsHigh()))
	if err != nil {
		return Model{}, err
	}
	drag, err := control.NewDrag(mapping, cfg.Input.GrabRadiusSq)
	if err != nil {
		return Model{}, err
	}
	stepper.SetInput(drag)

	m := Model{
		cfg:     cfg,
		stepper: stepper,
		drag:    drag,
		mapping: mapping,
		canvas:  canvas,
		epoch:   time.Now(),
		running: true,
		theme:   Themes[0],
		styles:  newStyles(Themes[0]),
		tension: progress.New(
			progress.WithScaledGradient("#00FF87", "#FF5F87"),
			progress.WithoutPercentage(),
		),
		tensionSpr:    harmonica.NewSpring(harmonica.FPS(tickRate), 6.0, 0.8),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.tension.Width = statsWidth - 16
	m.frame = stepper.Snapshot()
	m.draw()
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				m.stepper.Resync()
			}
		case "r":
			m.reset()
		case "s":
			m.cycleSubsteps()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.pointer(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step(time.Time(msg).Sub(m.epoch).Seconds())
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

// pointer forwards mouse events to the drag, in canvas dots.
func (m *Model) pointer(msg tea.MouseMsg) {
	x, y := cellToDots(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.drag.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.drag.PointerUp()
	}
}

// cellToDots returns the dot at the middle of a terminal cell.
func cellToDots(col, row int) (float64, float64) {
	return float64((col-canvasPadX)*2) + 0.5, float64((row-canvasPadY)*4) + 1.5
}

func (m *Model) resize(cols, rows int) {
	w := max(cols-statsWidth-2*canvasPadX-1, minWidth)
	h := max(rows-2*canvasPadY-1, minHeight)
	m.canvas = NewCanvas(w, h)
	m.mapping = m.mapping.Resize(float64(m.canvas.DotsWide()), float64(m.canvas.DotsHigh()))
	if err := m.drag.SetMapping(m.mapping); err != nil {
		m.err = err
	}
	m.draw()
}

func (m *Model) step(t float64) {
	m.frame = m.stepper.Step(t)
	if !m.frame.Within(m.cfg.Run.Bound) {
		m.running = false
		m.err = fmt.Errorf("diverged at t=%.2fs, press r to reset", t)
		return
	}

	m.energy = metrics.Energies(m.stepper.World())
	m.energyHistory = append(m.energyHistory, m.energy.Total())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.tensionPos, m.tensionVel = m.tensionSpr.Update(m.tensionPos, m.tensionVel, tensionTarget(m.frame))
}

// tensionTarget is the largest spring strain as a fraction of tensionFull.
func tensionTarget(f sim.Frame) float64 {
	worst := 0.0
	for _, s := range f.Springs {
		worst = math.Max(worst, s.Strain)
	}
	return math.Min(worst/tensionFull, 1)
}

func (m *Model) cycleSubsteps() {
	cur := m.stepper.Config().Substeps
	next := substepChoices[0]
	for i, n := range substepChoices {
		if n == cur {
			next = substepChoices[(i+1)%len(substepChoices)]
			break
		}
	}
	if err := m.stepper.SetSubsteps(next); err != nil {
		m.err = err
	}
}

// reset rebuilds the world from the config, keeping the sub-step choice.
func (m *Model) reset() {
	substeps := m.stepper.Config().Substeps
	stepper, err := m.cfg.NewStepper()
	if err != nil {
		m.err = err
		return
	}
	if err := stepper.SetSubsteps(substeps); err != nil {
		m.err = err
		return
	}
	m.drag.PointerUp()
	stepper.SetInput(m.drag)
	m.stepper = stepper
	m.frame = stepper.Snapshot()
	m.energyHistory = m.energyHistory[:0]
	m.energy = metrics.Breakdown{}
	m.tensionPos, m.tensionVel = 0, 0
	m.running = true
	m.err = nil
	m.draw()
}

// draw renders the current frame onto the canvas. Particle radii are scaled
// from configured surface pixels to canvas dots.
func (m *Model) draw() {
	m.canvas.Clear()
	d := m.frame.Display(m.mapping)
	scale := m.mapping.SurfaceWidth / m.cfg.World.SurfaceWidth

	for _, l := range d.Lines {
		m.canvas.DrawLine(round(l.From.X), round(l.From.Y), round(l.To.X), round(l.To.Y))
	}
	for _, c := range d.Circles {
		r := round(c.Radius * scale)
		x, y := round(c.Center.X), round(c.Center.Y)
		switch {
		case c.Anchor:
			m.canvas.FillCircle(x, y, max(r, 2))
			if d.Dragging {
				m.canvas.DrawCircle(x, y, max(r, 2)+2)
			}
		case c.Fixed:
			m.canvas.FillCircle(x, y, max(r, 1))
		default:
			m.canvas.FillCircle(x, y, r)
		}
	}
}

func round(v float64) int { return int(math.Round(v)) }

// View renders the canvas beside the stats panel.
func (m Model) View() string {
	st := m.styles
	canvasView := st.canvas.Render(st.rope.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.cfg.Preset)) + "\n")

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	if m.frame.Dragging {
		status += "  " + st.drag.Render("DRAGGING")
	}
	s.WriteString(status + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.frame.Time))
	row("Frames", fmt.Sprintf("%d", m.stepper.Frames()))
	row("Substeps", fmt.Sprintf("%d", m.stepper.Config().Substeps))
	row("Particles", fmt.Sprintf("%d", len(m.frame.Particles)))
	row("Energy", fmt.Sprintf("%.2f", m.energy.Total()))
	row("Kinetic", fmt.Sprintf("%.2f", m.energy.Kinetic))
	row("Elastic", fmt.Sprintf("%.2f", m.energy.Elastic))

	meter := math.Max(0, math.Min(1, m.tensionPos))
	s.WriteString("\n" + st.label.Render("Tension") + m.tension.ViewAs(meter) + "\n")

	strains := make([]float64, len(m.frame.Springs))
	for i, sp := range m.frame.Springs {
		strains[i] = sp.Strain
	}
	s.WriteString(st.label.Render("Strain") + st.StrainProfile(strains, statsWidth-16, tensionFull) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.err != nil {
		s.WriteString(st.drag.Render(m.err.Error()) + "\n")
	}

	s.WriteString(st.help.Render("Mouse:Drag anchor  SP:Pause  R:Reset\nS:Substeps  T:Theme  ?:Help  Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Mouse    - Drag the free end        ║
║  Space    - Pause/Resume             ║
║  R        - Rebuild the rope         ║
║  S        - Cycle sub-steps          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view full screen with mouse tracking.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
