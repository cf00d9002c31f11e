package physics

import (
	"fmt"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// World owns every particle and spring of one simulation. Particles keep
// insertion order; springs refer to them by index.
type World struct {
	particles []Particle
	springs   []Spring
	fields    []ForceField
	anchor    int
}

func NewWorld(fields ...ForceField) *World {
	return &World{anchor: -1, fields: fields}
}

// AddFixed appends a pinned particle and returns its index.
func (w *World) AddFixed(pos dynamo.Vec, radius float64) int {
	w.particles = append(w.particles, NewFixed(pos, radius))
	return len(w.particles) - 1
}

// AddDynamic appends a point mass at rest and returns its index.
func (w *World) AddDynamic(pos dynamo.Vec, radius, mass float64) (int, error) {
	p, err := NewDynamic(pos, radius, mass)
	if err != nil {
		return -1, err
	}
	w.particles = append(w.particles, p)
	return len(w.particles) - 1, nil
}

// Connect adds a spring between two existing particles.
func (w *World) Connect(a, b int, k, restLength, damping float64) (int, error) {
	if err := w.checkIndex(a); err != nil {
		return -1, err
	}
	if err := w.checkIndex(b); err != nil {
		return -1, err
	}
	s, err := NewSpring(a, b, k, restLength, damping)
	if err != nil {
		return -1, err
	}
	w.springs = append(w.springs, s)
	return len(w.springs) - 1, nil
}

// SetAnchor designates the particle that pointer drags override.
func (w *World) SetAnchor(i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.anchor = i
	return nil
}

func (w *World) AddField(f ForceField) { w.fields = append(w.fields, f) }

func (w *World) Particles() []Particle { return w.particles }
func (w *World) Springs() []Spring     { return w.springs }
func (w *World) Fields() []ForceField  { return w.fields }
func (w *World) AnchorIndex() int      { return w.anchor }

// Anchor returns the draggable particle, or nil if none was designated.
func (w *World) Anchor() Particle {
	if w.anchor < 0 {
		return nil
	}
	return w.particles[w.anchor]
}

// Dynamics returns the dynamic particles in chain order.
func (w *World) Dynamics() []*Dynamic {
	out := make([]*Dynamic, 0, len(w.particles))
	for _, p := range w.particles {
		if d, ok := p.(*Dynamic); ok {
			out = append(out, d)
		}
	}
	return out
}

// ApplySprings accumulates every spring's force pair.
func (w *World) ApplySprings() {
	for _, s := range w.springs {
		s.Apply(w.particles)
	}
}

// ApplyFields accumulates every force field on every dynamic particle.
func (w *World) ApplyFields() {
	for _, p := range w.particles {
		d, ok := p.(*Dynamic)
		if !ok {
			continue
		}
		for _, f := range w.fields {
			f.Apply(d)
		}
	}
}

// Integrate advances every particle by dt. Fixed particles ignore it.
func (w *World) Integrate(dt float64) {
	for _, p := range w.particles {
		p.Integrate(dt)
	}
}

// Gravity returns the strength of the first gravity field, or zero.
func (w *World) Gravity() float64 {
	for _, f := range w.fields {
		if g, ok := f.(Gravity); ok {
			return g.G
		}
	}
	return 0
}

func (w *World) checkIndex(i int) error {
	if i < 0 || i >= len(w.particles) {
		return fmt.Errorf("%w: index %d of %d", dynamo.ErrUnknownParticle, i, len(w.particles))
	}
	return nil
}
