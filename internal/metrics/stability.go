package metrics

import (
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// Stability is the share of frames in which every particle stayed within
// threshold of the origin.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(_ *physics.World, f sim.Frame) {
	s.samples++
	if !f.Within(s.threshold) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
