package metrics

import (
	"math"

	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// MaxStrain tracks the largest absolute spring strain seen in any frame.
type MaxStrain struct {
	name string
	max  float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(_ *physics.World, f sim.Frame) {
	for _, s := range f.Springs {
		m.max = math.Max(m.max, math.Abs(s.Strain))
	}
}

func (m *MaxStrain) Value() float64 { return m.max }
func (m *MaxStrain) Reset()         { m.max = 0 }

// DragShare is the fraction of frames in which the anchor was being dragged.
type DragShare struct {
	name    string
	dragged int
	samples int
}

func NewDragShare() *DragShare {
	return &DragShare{name: "drag_share"}
}

func (d *DragShare) Name() string {
	return d.name
}

func (d *DragShare) Observe(_ *physics.World, f sim.Frame) {
	if f.Dragging {
		d.dragged++
	}
	d.samples++
}

func (d *DragShare) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.dragged) / float64(d.samples)
}

func (d *DragShare) Reset() {
	d.dragged = 0
	d.samples = 0
}
