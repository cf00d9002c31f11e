package automation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// Pointer receives replayed events. *control.Drag satisfies it.
type Pointer interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp()
}

// Gesture is one pointer event at time At, in surface pixels. A move with
// Over > 0 glides from the previous pointer position to (X, Y).
type Gesture struct {
	At     float64 `yaml:"at"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Over   float64 `yaml:"over"`
}

func ValidateGestures(gs []Gesture) error {
	for i, g := range gs {
		switch g.Action {
		case "down", "move", "up":
		default:
			return fmt.Errorf("%w: gesture %d has unknown action %q", dynamo.ErrParameterBounds, i, g.Action)
		}
		if g.At < 0 || g.Over < 0 {
			return fmt.Errorf("%w: gesture %d has negative time", dynamo.ErrParameterBounds, i)
		}
	}
	return nil
}

// Player is a sim.Driver that replays gestures on schedule.
type Player struct {
	gestures []Gesture
	pointer  Pointer
	next     int

	pos   dynamo.Vec
	glide *glide
}

type glide struct {
	from, to dynamo.Vec
	start    float64
	over     float64
}

func NewPlayer(gs []Gesture, p Pointer) *Player {
	sorted := make([]Gesture, len(gs))
	copy(sorted, gs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Player{gestures: sorted, pointer: p}
}

// Done reports whether every gesture has been replayed.
func (p *Player) Done() bool { return p.next >= len(p.gestures) && p.glide == nil }

// Drive replays every gesture due by t and advances any glide in progress.
func (p *Player) Drive(t float64) {
	for p.next < len(p.gestures) && p.gestures[p.next].At <= t {
		p.finishGlide()
		p.apply(p.gestures[p.next])
		p.next++
	}
	if p.glide != nil {
		g := p.glide
		frac := (t - g.start) / g.over
		if frac >= 1 {
			p.finishGlide()
			return
		}
		p.pos = r2.Add(g.from, r2.Scale(frac, r2.Sub(g.to, g.from)))
		p.pointer.PointerMove(p.pos.X, p.pos.Y)
	}
}

func (p *Player) apply(g Gesture) {
	target := dynamo.V(g.X, g.Y)
	switch g.Action {
	case "down":
		p.pos = target
		p.pointer.PointerDown(g.X, g.Y)
	case "move":
		if g.Over > 0 {
			p.glide = &glide{from: p.pos, to: target, start: g.At, over: g.Over}
			return
		}
		p.pos = target
		p.pointer.PointerMove(g.X, g.Y)
	case "up":
		p.pointer.PointerUp()
	}
}

func (p *Player) finishGlide() {
	if p.glide == nil {
		return
	}
	p.pos = p.glide.to
	p.pointer.PointerMove(p.pos.X, p.pos.Y)
	p.glide = nil
}
