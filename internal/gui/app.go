package gui

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/control"
	"github.com/P4GAN/PhysicsSims/internal/metrics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = color.RGBA{10, 10, 10, 255}
	ColAccent  = color.RGBA{180, 180, 180, 255}
	ColSelect  = color.RGBA{255, 255, 255, 255}
	ColText    = color.RGBA{140, 140, 140, 255}
	ColTextDim = color.RGBA{60, 60, 60, 255}
	ColPin     = color.RGBA{255, 95, 135, 255}
	ColAnchor  = color.RGBA{0, 255, 135, 255}
	ColStretch = color.RGBA{255, 80, 80, 255}
	ColSlack   = color.RGBA{80, 140, 255, 255}
)

const maxTelemetry = 240

var substepChoices = []int{1, 4, 16, 32}

// Input is one update's worth of mouse and keyboard state, in window pixels.
type Input struct {
	X, Y         int
	JustPressed  bool
	JustReleased bool
	Pause        bool
	Reset        bool
	Substeps     bool
	Quit         bool
}

// App is an ebiten.Game drawing the rope in a resizable window. The pointer
// drags the anchor through a control.Drag.
type App struct {
	Cfg       *config.Config
	Stepper   *sim.Stepper
	Drag      *control.Drag
	Mapping   viewport.Mapping
	Frame     sim.Frame
	Energy    metrics.Breakdown
	Telemetry []float64 // total energy, ring buffer
	Running   bool

	epoch time.Time
	now   func() time.Time
}

func NewApp(cfg *config.Config) (*App, error) {
	stepper, err := cfg.NewStepper()
	if err != nil {
		return nil, err
	}
	mapping, err := cfg.Mapping()
	if err != nil {
		return nil, err
	}
	drag, err := control.NewDrag(mapping, cfg.Input.GrabRadiusSq)
	if err != nil {
		return nil, err
	}
	stepper.SetInput(drag)

	return &App{
		Cfg:       cfg,
		Stepper:   stepper,
		Drag:      drag,
		Mapping:   mapping,
		Frame:     stepper.Snapshot(),
		Telemetry: make([]float64, 0, maxTelemetry),
		Running:   true,
		epoch:     time.Now(),
		now:       time.Now,
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.World.SurfaceWidth), int(cfg.World.SurfaceHeight))
	ebiten.SetWindowTitle("ropesim - " + cfg.Preset)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update polls ebiten for input and advances the simulation to wall-clock time.
func (a *App) Update() error {
	return a.Apply(readInput(), a.now().Sub(a.epoch).Seconds())
}

func readInput() Input {
	x, y := ebiten.CursorPosition()
	return Input{
		X:            x,
		Y:            y,
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Pause:        inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Reset:        inpututil.IsKeyJustPressed(ebiten.KeyR),
		Substeps:     inpututil.IsKeyJustPressed(ebiten.KeyS),
		Quit:         inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}

// Apply feeds one update's input to the drag and steps to time t.
func (a *App) Apply(in Input, t float64) error {
	if in.Quit {
		return ebiten.Termination
	}
	if in.Pause {
		a.Running = !a.Running
		if a.Running {
			a.Stepper.Resync()
		}
	}
	if in.Reset {
		if err := a.reset(); err != nil {
			return err
		}
	}
	if in.Substeps {
		if err := a.cycleSubsteps(); err != nil {
			return err
		}
	}

	x, y := float64(in.X), float64(in.Y)
	switch {
	case in.JustPressed:
		a.Drag.PointerDown(x, y)
	case in.JustReleased:
		a.Drag.PointerUp()
	default:
		a.Drag.PointerMove(x, y)
	}

	if !a.Running {
		return nil
	}
	a.Frame = a.Stepper.Step(t)
	if !a.Frame.Within(a.Cfg.Run.Bound) {
		a.Running = false
		return fmt.Errorf("gui: %w at t=%.2fs", errDiverged, t)
	}
	a.Energy = metrics.Energies(a.Stepper.World())
	a.Telemetry = append(a.Telemetry, a.Energy.Total())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	return nil
}

var errDiverged = errors.New("simulation diverged")

func (a *App) reset() error {
	substeps := a.Stepper.Config().Substeps
	stepper, err := a.Cfg.NewStepper()
	if err != nil {
		return err
	}
	if err := stepper.SetSubsteps(substeps); err != nil {
		return err
	}
	a.Drag.PointerUp()
	stepper.SetInput(a.Drag)
	a.Stepper = stepper
	a.Frame = stepper.Snapshot()
	a.Telemetry = a.Telemetry[:0]
	a.Running = true
	return nil
}

func (a *App) cycleSubsteps() error {
	cur := a.Stepper.Config().Substeps
	next := substepChoices[0]
	for i, n := range substepChoices {
		if n == cur {
			next = substepChoices[(i+1)%len(substepChoices)]
			break
		}
	}
	return a.Stepper.SetSubsteps(next)
}

// Layout keeps one screen pixel per window pixel and follows window resizes.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w > 0 && h > 0 && (w != a.Mapping.SurfaceWidth || h != a.Mapping.SurfaceHeight) {
		m := a.Mapping.Resize(w, h)
		if err := a.Drag.SetMapping(m); err == nil {
			a.Mapping = m
		}
	}
	return outsideWidth, outsideHeight
}
