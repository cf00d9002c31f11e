package metrics

import (
	"math"
	"testing"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

func frameAt(ps ...dynamo.Vec) sim.Frame {
	f := sim.Frame{}
	for _, p := range ps {
		f.Particles = append(f.Particles, sim.ParticleDraw{Center: p})
	}
	return f
}

func TestStability(t *testing.T) {
	s := NewStability(10)
	if s.Value() != 1 {
		t.Errorf("no samples should count as stable, got %f", s.Value())
	}

	s.Observe(nil, frameAt(dynamo.V(1, 1)))
	s.Observe(nil, frameAt(dynamo.V(1, 1), dynamo.V(20, 0)))
	s.Observe(nil, frameAt(dynamo.V(3, -4)))
	s.Observe(nil, frameAt(dynamo.V(0, 0)))

	if got := s.Value(); got != 0.75 {
		t.Errorf("expected stability 0.75, got %f", got)
	}
}

func TestStabilityFlagsNaN(t *testing.T) {
	s := NewStability(1e6)
	s.Observe(nil, frameAt(dynamo.V(0, math.NaN())))
	if s.Value() != 0 {
		t.Errorf("NaN positions should be unstable, got %f", s.Value())
	}
}

func TestMaxStrainAndDragShare(t *testing.T) {
	strain := NewMaxStrain()
	share := NewDragShare()

	frames := []sim.Frame{
		{Springs: []sim.SpringDraw{{Strain: 0.1}, {Strain: -0.4}}},
		{Springs: []sim.SpringDraw{{Strain: 0.2}}, Dragging: true},
	}
	for _, f := range frames {
		strain.Observe(nil, f)
		share.Observe(nil, f)
	}

	if strain.Value() != 0.4 {
		t.Errorf("expected max strain 0.4, got %f", strain.Value())
	}
	if share.Value() != 0.5 {
		t.Errorf("expected drag share 0.5, got %f", share.Value())
	}

	strain.Reset()
	share.Reset()
	if strain.Value() != 0 || share.Value() != 0 {
		t.Error("reset should clear both metrics")
	}
}

func TestStandardMetricNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard(1e6) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}
