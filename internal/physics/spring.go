package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// MinSpringLength is the separation at or below which a spring contributes
// no force for the sub-step.
const MinSpringLength = 1e-3

// Spring is a linear two-body spring between particles A and B of a world.
// It holds arena indices, not particles.
type Spring struct {
	A, B       int
	K          float64
	RestLength float64
	Damping    float64
}

// NewSpring validates the spring parameters. Endpoint range is checked by
// World.Connect, which knows the arena size.
func NewSpring(a, b int, k, restLength, damping float64) (Spring, error) {
	switch {
	case a == b:
		return Spring{}, fmt.Errorf("%w: both ends are particle %d", dynamo.ErrInvalidSpring, a)
	case !(k > 0):
		return Spring{}, fmt.Errorf("%w: stiffness %g", dynamo.ErrInvalidSpring, k)
	case !(restLength >= 0):
		return Spring{}, fmt.Errorf("%w: rest length %g", dynamo.ErrInvalidSpring, restLength)
	case !(damping >= 0):
		return Spring{}, fmt.Errorf("%w: damping %g", dynamo.ErrInvalidSpring, damping)
	}
	return Spring{A: a, B: b, K: k, RestLength: restLength, Damping: damping}, nil
}

// Force returns the force on A. B receives its negation. ok is false when
// the ends are within MinSpringLength of each other.
func (s Spring) Force(ps []Particle) (f dynamo.Vec, ok bool) {
	a, b := ps[s.A], ps[s.B]
	d := r2.Sub(a.Position(), b.Position())
	length := dynamo.Norm(d)
	if !(length > MinSpringLength) {
		return dynamo.Vec{}, false
	}

	mag := -s.K * (length - s.RestLength)
	if s.Damping != 0 {
		dv := r2.Sub(a.Velocity(), b.Velocity())
		mag -= s.Damping * r2.Dot(d, dv) / length
	}
	return r2.Scale(mag/length, d), true
}

// Apply pushes the equal and opposite force pair onto both ends.
func (s Spring) Apply(ps []Particle) {
	f, ok := s.Force(ps)
	if !ok {
		return
	}
	ps[s.A].ApplyForce(f)
	ps[s.B].ApplyForce(r2.Scale(-1, f))
}

// Length is the current separation of the ends.
func (s Spring) Length(ps []Particle) float64 {
	return r2.Norm(r2.Sub(ps[s.A].Position(), ps[s.B].Position()))
}

// Strain is the relative deviation from rest length. Zero-rest springs report
// their absolute length.
func (s Spring) Strain(ps []Particle) float64 {
	l := s.Length(ps)
	if s.RestLength == 0 {
		return l
	}
	return (l - s.RestLength) / s.RestLength
}

// Energy is the elastic potential ½k(l-l₀)².
func (s Spring) Energy(ps []Particle) float64 {
	ext := s.Length(ps) - s.RestLength
	return 0.5 * s.K * ext * ext
}
