package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// ChainSpec describes a rope: a fixed pin at Origin followed by Segments
// dynamic particles, each displaced by Offset from the previous one and
// joined to it by a spring.
type ChainSpec struct {
	Origin   dynamo.Vec
	Offset   dynamo.Vec
	Segments int

	Mass      float64
	EndMass   float64 // zero means Mass
	Radius    float64
	EndRadius float64 // zero means Radius
	PinRadius float64

	Stiffness  float64
	RestLength float64
	Damping    float64

	// PinBothEnds terminates the chain with a second fixed particle, which
	// becomes the anchor instead of the last dynamic particle.
	PinBothEnds bool

	Gravity float64
	Drag    float64
}

// DefaultChainSpec is the demo rope: 29 links hanging
// diagonally from (7.5, 9) with a heavy end.
func DefaultChainSpec() ChainSpec {
	return ChainSpec{
		Origin:     dynamo.V(7.5, 9),
		Offset:     dynamo.V(-0.1, -0.1),
		Segments:   29,
		Mass:       1,
		EndMass:    10,
		Radius:     1,
		EndRadius:  10,
		PinRadius:  1,
		Stiffness:  2000,
		RestLength: 0.1,
		Damping:    0.5,
		Gravity:    DefaultGravity,
		Drag:       DefaultDrag,
	}
}

// NewChain builds the world for spec. Springs are created as (new, previous)
// pairs so every spring refers to particles that already exist.
func NewChain(spec ChainSpec) (*World, error) {
	if spec.Segments < 1 {
		return nil, fmt.Errorf("%w: segments %d", dynamo.ErrParameterBounds, spec.Segments)
	}
	endMass, endRadius := spec.EndMass, spec.EndRadius
	if endMass == 0 {
		endMass = spec.Mass
	}
	if endRadius == 0 {
		endRadius = spec.Radius
	}

	w := NewWorld(Gravity{G: spec.Gravity}, Drag{C: spec.Drag})
	prev := w.AddFixed(spec.Origin, spec.PinRadius)

	for i := 1; i <= spec.Segments; i++ {
		mass, radius := spec.Mass, spec.Radius
		if i == spec.Segments && !spec.PinBothEnds {
			mass, radius = endMass, endRadius
		}
		pos := r2.Add(spec.Origin, r2.Scale(float64(i), spec.Offset))
		idx, err := w.AddDynamic(pos, radius, mass)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		if _, err := w.Connect(idx, prev, spec.Stiffness, spec.RestLength, spec.Damping); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		prev = idx
	}

	if spec.PinBothEnds {
		pos := r2.Add(spec.Origin, r2.Scale(float64(spec.Segments+1), spec.Offset))
		idx := w.AddFixed(pos, endRadius)
		if _, err := w.Connect(idx, prev, spec.Stiffness, spec.RestLength, spec.Damping); err != nil {
			return nil, fmt.Errorf("end pin: %w", err)
		}
		prev = idx
	}

	if err := w.SetAnchor(prev); err != nil {
		return nil, err
	}
	return w, nil
}
