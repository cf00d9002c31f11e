package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/onsi/gomega"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// recorder is a particle that remembers every force it receives.
type recorder struct {
	pos, vel dynamo.Vec
	forces   []dynamo.Vec
}

func (r *recorder) Position() dynamo.Vec    { return r.pos }
func (r *recorder) Radius() float64         { return 0 }
func (r *recorder) Velocity() dynamo.Vec    { return r.vel }
func (r *recorder) ApplyForce(f dynamo.Vec) { r.forces = append(r.forces, f) }
func (r *recorder) Integrate(float64)       {}
func (r *recorder) Place(p dynamo.Vec)      { r.pos = p }

func TestSpringForceAntisymmetric(t *testing.T) {
	tests := []struct {
		name       string
		a, b       dynamo.Vec
		va, vb     dynamo.Vec
		k, rest, c float64
	}{
		{"stretched", dynamo.V(0, 0), dynamo.V(0.3, 0.4), dynamo.Vec{}, dynamo.Vec{}, 2000, 0.1, 0},
		{"compressed", dynamo.V(1, 1), dynamo.V(1.01, 1.02), dynamo.Vec{}, dynamo.Vec{}, 50, 1, 0},
		{"damped", dynamo.V(-2.3, 7.1), dynamo.V(4.4, -0.9), dynamo.V(0.7, -1.3), dynamo.V(-3.1, 2.2), 123.4, 0.5, 0.5},
		{"irrational", dynamo.V(math.Pi, math.E), dynamo.V(math.Sqrt2, 1/3.0), dynamo.V(1e-3, 7), dynamo.V(9, -1e-4), 5000, 0.01, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gomega.NewWithT(t)
			a := &recorder{pos: tt.a, vel: tt.va}
			b := &recorder{pos: tt.b, vel: tt.vb}
			s, err := NewSpring(0, 1, tt.k, tt.rest, tt.c)
			g.Expect(err).NotTo(gomega.HaveOccurred())

			s.Apply([]Particle{a, b})

			g.Expect(a.forces).To(gomega.HaveLen(1))
			g.Expect(b.forces).To(gomega.HaveLen(1))
			g.Expect(b.forces[0].X).To(gomega.Equal(-a.forces[0].X))
			g.Expect(b.forces[0].Y).To(gomega.Equal(-a.forces[0].Y))
		})
	}
}

func TestSpringHookeDirection(t *testing.T) {
	a := &recorder{pos: dynamo.V(0, 0)}
	b := &recorder{pos: dynamo.V(2, 0)}
	s, _ := NewSpring(0, 1, 10, 1, 0)

	f, ok := s.Force([]Particle{a, b})
	if !ok {
		t.Fatal("expected force")
	}
	// stretched by 1: a is pulled toward b with magnitude k*1
	if math.Abs(f.X-10) > 1e-12 || f.Y != 0 {
		t.Errorf("expected (10, 0), got %v", f)
	}
}

func TestSpringSkipsDegenerateLength(t *testing.T) {
	a := &recorder{pos: dynamo.V(1, 1)}
	b := &recorder{pos: dynamo.V(1+1e-4, 1)}
	s, _ := NewSpring(0, 1, 2000, 0.1, 0.5)

	s.Apply([]Particle{a, b})

	if len(a.forces) != 0 || len(b.forces) != 0 {
		t.Errorf("near-coincident ends should contribute nothing, got %v / %v", a.forces, b.forces)
	}
}

func TestSpringAtRestLengthHasNoForce(t *testing.T) {
	a := &recorder{pos: dynamo.V(0, 0)}
	b := &recorder{pos: dynamo.V(0, -1)}
	s, _ := NewSpring(0, 1, 500, 1, 0.5)

	f, ok := s.Force([]Particle{a, b})
	if !ok {
		t.Fatal("expected force evaluation")
	}
	if f.X != 0 || f.Y != 0 {
		t.Errorf("expected zero force at rest length, got %v", f)
	}
}

func TestSpringDampingOpposesSeparation(t *testing.T) {
	// at rest length, but a moves away from b along the axis
	a := &recorder{pos: dynamo.V(0, 0), vel: dynamo.V(-1, 0)}
	b := &recorder{pos: dynamo.V(1, 0)}
	s, _ := NewSpring(0, 1, 100, 1, 2)

	f, _ := s.Force([]Particle{a, b})
	if f.X <= 0 {
		t.Errorf("damping should pull a back toward b, got %v", f)
	}
	if math.Abs(f.X-2) > 1e-12 {
		t.Errorf("expected damping force 2, got %f", f.X)
	}
}

func TestNewSpringValidation(t *testing.T) {
	tests := []struct {
		name          string
		a, b          int
		k, rest, damp float64
	}{
		{"same particle", 3, 3, 1, 1, 0},
		{"zero stiffness", 0, 1, 0, 1, 0},
		{"negative stiffness", 0, 1, -5, 1, 0},
		{"negative rest", 0, 1, 1, -0.1, 0},
		{"negative damping", 0, 1, 1, 1, -0.5},
		{"NaN stiffness", 0, 1, math.NaN(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpring(tt.a, tt.b, tt.k, tt.rest, tt.damp)
			if !errors.Is(err, dynamo.ErrInvalidSpring) {
				t.Errorf("expected ErrInvalidSpring, got %v", err)
			}
		})
	}
}

func TestSpringEnergyAndStrain(t *testing.T) {
	ps := []Particle{&recorder{pos: dynamo.V(0, 0)}, &recorder{pos: dynamo.V(0, 1.5)}}
	s, _ := NewSpring(0, 1, 4, 1, 0)

	if e := s.Energy(ps); math.Abs(e-0.5) > 1e-12 {
		t.Errorf("expected energy 0.5, got %f", e)
	}
	if st := s.Strain(ps); math.Abs(st-0.5) > 1e-12 {
		t.Errorf("expected strain 0.5, got %f", st)
	}
}
