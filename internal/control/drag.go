package control

import (
	"fmt"
	"sync"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

// DefaultGrabRadiusSq is the squared simulation distance within which a press
// picks up the anchor.
const DefaultGrabRadiusSq = 1.0

// Drag is the pending-update slot between pointer events and the stepper.
type Drag struct {
	mu sync.Mutex

	mapping      viewport.Mapping
	grabRadiusSq float64

	pixel   dynamo.Vec
	down    bool
	pressed bool // press not yet seen by Sample
	engaged bool
}

func NewDrag(m viewport.Mapping, grabRadiusSq float64) (*Drag, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if !(grabRadiusSq > 0) {
		return nil, fmt.Errorf("%w: grab radius squared must be positive, got %g", dynamo.ErrParameterBounds, grabRadiusSq)
	}
	return &Drag{mapping: m, grabRadiusSq: grabRadiusSq}, nil
}

// PointerDown records a press at pixel (x, y). Whether it grabs the anchor is
// decided at the next Sample.
func (d *Drag) PointerDown(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pixel = dynamo.V(x, y)
	d.down = true
	d.pressed = true
}

func (d *Drag) PointerMove(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pixel = dynamo.V(x, y)
}

// PointerUp ends any drag. A press and release between two steps never
// engages.
func (d *Drag) PointerUp() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.down = false
	d.pressed = false
	d.engaged = false
}

// SetMapping updates the surface size used to convert pointer pixels.
func (d *Drag) SetMapping(m viewport.Mapping) error {
	if err := m.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mapping = m
	return nil
}

func (d *Drag) Mapping() viewport.Mapping {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mapping
}

// Sample reports the drag target in simulation units. A fresh press engages
// only if it lands within the grab radius of anchor.
func (d *Drag) Sample(anchor dynamo.Vec) (dynamo.Vec, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.mapping.ToSimulation(d.pixel)
	if d.pressed {
		d.pressed = false
		d.engaged = d.down && dynamo.Dist2(target, anchor) < d.grabRadiusSq
	}
	return target, d.engaged
}

// Engaged reports whether the last Sample was dragging.
func (d *Drag) Engaged() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.engaged
}

// Pointer returns the last pointer position in simulation units.
func (d *Drag) Pointer() dynamo.Vec {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mapping.ToSimulation(d.pixel)
}
