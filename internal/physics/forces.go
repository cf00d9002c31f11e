package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

const (
	DefaultGravity = 9.8
	DefaultDrag    = 0.5
)

// ForceField is a per-particle force applied to every dynamic particle once
// per sub-step.
type ForceField interface {
	Name() string
	Apply(p *Dynamic)
}

// Gravity pulls toward -Y with acceleration G.
type Gravity struct {
	G float64
}

func (g Gravity) Name() string { return "gravity" }

func (g Gravity) Apply(p *Dynamic) {
	p.ApplyForce(dynamo.V(0, -g.G*p.Mass()))
}

// Drag is linear drag opposing the particle's derived velocity.
type Drag struct {
	C float64
}

func (d Drag) Name() string { return "drag" }

func (d Drag) Apply(p *Dynamic) {
	p.ApplyForce(r2.Scale(-d.C, p.Velocity()))
}
