package gui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// Strain at which a spring is drawn fully hot or cold.
const strainFull = 0.5

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	a.drawSim(screen, a.Frame.Display(a.Mapping))
	a.DrawHUD(screen)
	a.DrawTelemetry(screen)
}

func (a *App) drawSim(screen *ebiten.Image, d sim.DisplayFrame) {
	for _, l := range d.Lines {
		vector.StrokeLine(screen, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), 2, strainColor(l.Strain), true)
	}
	for _, c := range d.Circles {
		x, y, r := float32(c.Center.X), float32(c.Center.Y), float32(c.Radius)
		vector.DrawFilledCircle(screen, x, y, r, circleColor(c), true)
		if c.Anchor && d.Dragging {
			vector.StrokeCircle(screen, x, y, r+4, 1.5, ColSelect, true)
		}
	}
}

func circleColor(c sim.Circle) color.RGBA {
	switch {
	case c.Anchor:
		return ColAnchor
	case c.Fixed:
		return ColPin
	default:
		return ColAccent
	}
}

// strainColor blends from ColAccent toward ColStretch for stretched springs
// and toward ColSlack for compressed ones.
func strainColor(strain float64) color.RGBA {
	if math.IsNaN(strain) {
		return ColAccent
	}
	t := math.Min(math.Abs(strain)/strainFull, 1)
	target := ColStretch
	if strain < 0 {
		target = ColSlack
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + t*(float64(b)-float64(a))) }
	return color.RGBA{
		R: mix(ColAccent.R, target.R),
		G: mix(ColAccent.G, target.G),
		B: mix(ColAccent.B, target.B),
		A: 255,
	}
}

// HUDLines is the text shown in the top left corner.
func (a *App) HUDLines() []string {
	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	if a.Frame.Dragging {
		status += "  DRAGGING"
	}
	return []string{
		fmt.Sprintf("%s  %s", a.Cfg.Preset, status),
		fmt.Sprintf("t=%.2fs  frame %d  substeps %d", a.Frame.Time, a.Stepper.Frames(), a.Stepper.Config().Substeps),
		fmt.Sprintf("energy %.2f  (kinetic %.2f, elastic %.2f)", a.Energy.Total(), a.Energy.Kinetic, a.Energy.Elastic),
		"drag the green end  SPACE pause  R reset  S substeps  ESC quit",
	}
}

func (a *App) DrawHUD(screen *ebiten.Image) {
	lines := a.HUDLines()
	for i, line := range lines {
		clr := ColText
		if i == len(lines)-1 {
			clr = ColTextDim
		}
		text.Draw(screen, line, basicfont.Face7x13, 12, 20+i*16, clr)
	}
}

// DrawTelemetry plots the recent total energy along the bottom edge.
func (a *App) DrawTelemetry(screen *ebiten.Image) {
	n := len(a.Telemetry)
	if n < 2 {
		return
	}
	lo, hi := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		hi = lo + 1
	}

	const w, h, margin = 240.0, 60.0, 12.0
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	x0, y0 := float32(float64(sw)-w-margin), float32(float64(sh)-margin)
	vector.StrokeRect(screen, x0, y0-float32(h), float32(w), float32(h), 1, ColTextDim, false)

	px := func(i int) float32 { return x0 + float32(float64(i)/float64(maxTelemetry-1)*w) }
	py := func(v float64) float32 { return y0 - float32((v-lo)/(hi-lo)*h) }
	for i := 1; i < n; i++ {
		vector.StrokeLine(screen, px(i-1), py(a.Telemetry[i-1]), px(i), py(a.Telemetry[i]), 1, ColAnchor, true)
	}
	text.Draw(screen, "energy", basicfont.Face7x13, int(x0), int(y0-float32(h))-4, ColTextDim)
}
