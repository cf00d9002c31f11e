package sim

import (
	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

type ParticleDraw struct {
	Center dynamo.Vec
	Radius float64
	Fixed  bool
	Anchor bool
}

type SpringDraw struct {
	A, B   dynamo.Vec
	Strain float64
}

// Frame is the render sink payload: positions in simulation units, in chain
// order, after a step.
type Frame struct {
	Index     int
	Time      float64
	Dt        float64
	Particles []ParticleDraw
	Springs   []SpringDraw
	Dragging  bool
}

func snapshot(w *physics.World) Frame {
	ps := w.Particles()
	f := Frame{
		Particles: make([]ParticleDraw, len(ps)),
		Springs:   make([]SpringDraw, len(w.Springs())),
	}
	for i, p := range ps {
		_, fixed := p.(*physics.Fixed)
		f.Particles[i] = ParticleDraw{
			Center: p.Position(),
			Radius: p.Radius(),
			Fixed:  fixed,
			Anchor: i == w.AnchorIndex(),
		}
	}
	for i, s := range w.Springs() {
		f.Springs[i] = SpringDraw{
			A:      ps[s.A].Position(),
			B:      ps[s.B].Position(),
			Strain: s.Strain(ps),
		}
	}
	return f
}

// Positions flattens particle centers as x0, y0, x1, y1, ...
func (f Frame) Positions() []float64 {
	out := make([]float64, 0, 2*len(f.Particles))
	for _, p := range f.Particles {
		out = append(out, p.Center.X, p.Center.Y)
	}
	return out
}

// AnchorPosition returns the anchor's center, if the frame has one.
func (f Frame) AnchorPosition() (dynamo.Vec, bool) {
	for _, p := range f.Particles {
		if p.Anchor {
			return p.Center, true
		}
	}
	return dynamo.Vec{}, false
}

// Within reports whether every particle is finite and no farther than bound
// from the origin.
func (f Frame) Within(bound float64) bool {
	for _, p := range f.Particles {
		if !dynamo.IsFinite(p.Center) || dynamo.Norm(p.Center) > bound {
			return false
		}
	}
	return true
}

type Circle struct {
	Center dynamo.Vec
	Radius float64
	Fixed  bool
	Anchor bool
}

type Line struct {
	From, To dynamo.Vec
	Strain   float64
}

// DisplayFrame holds draw commands in surface pixels.
type DisplayFrame struct {
	Circles  []Circle
	Lines    []Line
	Dragging bool
}

// Display projects the frame onto a surface. Radii are already in pixels.
func (f Frame) Display(m viewport.Mapping) DisplayFrame {
	d := DisplayFrame{
		Circles:  make([]Circle, len(f.Particles)),
		Lines:    make([]Line, len(f.Springs)),
		Dragging: f.Dragging,
	}
	for i, p := range f.Particles {
		d.Circles[i] = Circle{Center: m.ToDisplay(p.Center), Radius: p.Radius, Fixed: p.Fixed, Anchor: p.Anchor}
	}
	for i, s := range f.Springs {
		d.Lines[i] = Line{From: m.ToDisplay(s.A), To: m.ToDisplay(s.B), Strain: s.Strain}
	}
	return d
}
