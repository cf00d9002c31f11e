package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// Particle is a point in the world arena. Fixed and Dynamic are the only
// implementations the stepper knows how to drive.
type Particle interface {
	Position() dynamo.Vec
	Radius() float64
	// Velocity is the velocity derived at the last integration. Zero for
	// particles that never integrate.
	Velocity() dynamo.Vec
	ApplyForce(f dynamo.Vec)
	Integrate(dt float64)
	// Place moves the particle bypassing integration. For a dynamic particle
	// the previous position is set too, so its implicit velocity becomes zero.
	Place(p dynamo.Vec)
}

// Fixed is a pinned particle. It ignores forces and never integrates.
type Fixed struct {
	pos    dynamo.Vec
	radius float64
}

func NewFixed(pos dynamo.Vec, radius float64) *Fixed {
	return &Fixed{pos: pos, radius: radius}
}

func (f *Fixed) Position() dynamo.Vec  { return f.pos }
func (f *Fixed) Radius() float64       { return f.radius }
func (f *Fixed) Velocity() dynamo.Vec  { return dynamo.Vec{} }
func (f *Fixed) ApplyForce(dynamo.Vec) {}
func (f *Fixed) Integrate(float64)     {}
func (f *Fixed) Place(p dynamo.Vec)    { f.pos = p }
func (f *Fixed) SetRadius(r float64)   { f.radius = r }

// Dynamic is a point mass integrated with position Verlet.
type Dynamic struct {
	pos    dynamo.Vec
	prev   dynamo.Vec
	acc    dynamo.Vec
	vel    dynamo.Vec
	mass   float64
	radius float64
	lastDt float64
}

// NewDynamic creates a particle at rest at pos.
func NewDynamic(pos dynamo.Vec, radius, mass float64) (*Dynamic, error) {
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: got %g", dynamo.ErrInvalidMass, mass)
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius %g", dynamo.ErrParameterBounds, radius)
	}
	return &Dynamic{pos: pos, prev: pos, mass: mass, radius: radius}, nil
}

func (d *Dynamic) Position() dynamo.Vec     { return d.pos }
func (d *Dynamic) Previous() dynamo.Vec     { return d.prev }
func (d *Dynamic) Acceleration() dynamo.Vec { return d.acc }
func (d *Dynamic) Velocity() dynamo.Vec     { return d.vel }
func (d *Dynamic) Mass() float64            { return d.mass }
func (d *Dynamic) Radius() float64          { return d.radius }
func (d *Dynamic) SetRadius(r float64)      { d.radius = r }

// SetMass changes the mass of an existing particle.
func (d *Dynamic) SetMass(m float64) error {
	if !(m > 0) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidMass, m)
	}
	d.mass = m
	return nil
}

// StepVelocity is the displacement over the last sub-step divided by its
// length. Unlike Velocity it is a one-step difference, which makes it the
// right input for kinetic energy.
func (d *Dynamic) StepVelocity() dynamo.Vec {
	if d.lastDt <= 0 {
		return dynamo.Vec{}
	}
	return r2.Scale(1/d.lastDt, r2.Sub(d.pos, d.prev))
}

func (d *Dynamic) ApplyForce(f dynamo.Vec) {
	d.mustHaveMass()
	d.acc = r2.Add(d.acc, r2.Scale(1/d.mass, f))
}

// Integrate advances the particle by one Störmer–Verlet step. A non-positive
// dt leaves the particle untouched, accumulated acceleration included.
func (d *Dynamic) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	d.mustHaveMass()

	next := r2.Add(r2.Sub(r2.Scale(2, d.pos), d.prev), r2.Scale(dt*dt, d.acc))
	d.vel = r2.Scale(1/dt, r2.Sub(next, d.prev))
	d.prev = d.pos
	d.pos = next
	d.acc = dynamo.Vec{}
	d.lastDt = dt
}

func (d *Dynamic) Place(p dynamo.Vec) {
	d.pos = p
	d.prev = p
}

func (d *Dynamic) mustHaveMass() {
	if !(d.mass > 0) {
		panic(fmt.Sprintf("physics: dynamic particle with mass %g", d.mass))
	}
}
