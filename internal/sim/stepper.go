package sim

import (
	"math"
	"sync/atomic"

	"github.com/P4GAN/PhysicsSims/internal/physics"
)

// Stepper advances a world once per rendered frame. It owns the frame clock,
// the anchor override, and the split of each frame into sub-steps.
type Stepper struct {
	world *physics.World
	cfg   StepConfig
	input InputSource

	lastTime float64
	started  bool
	dragging bool
	frames   int

	busy atomic.Bool
}

func NewStepper(w *physics.World, cfg StepConfig) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Stepper{world: w, cfg: cfg}, nil
}

func (s *Stepper) World() *physics.World { return s.world }
func (s *Stepper) Config() StepConfig    { return s.cfg }
func (s *Stepper) Frames() int           { return s.frames }

// SetInput installs the pointer source sampled at the start of each step.
// A nil source disables dragging.
func (s *Stepper) SetInput(in InputSource) { s.input = in }

// SetSubsteps changes the sub-step count between frames.
func (s *Stepper) SetSubsteps(n int) error {
	cfg := s.cfg
	cfg.Substeps = n
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// Resync forgets the previous timestamp. The next Step only records its time,
// so a pause or a hidden window does not turn into one enormous frame.
func (s *Stepper) Resync() { s.started = false }

// Step advances the world to timestamp t, in seconds, and returns the frame to
// draw. Step is not re-entrant and panics if called while already stepping.
func (s *Stepper) Step(t float64) Frame {
	if !s.busy.CompareAndSwap(false, true) {
		panic("sim: Step called while a step is in progress")
	}
	defer s.busy.Store(false)

	dt := s.frameDt(t)
	s.applyInput()
	if dt > 0 {
		h := dt / float64(s.cfg.Substeps)
		for i := 0; i < s.cfg.Substeps; i++ {
			s.substep(h)
		}
	}

	f := snapshot(s.world)
	f.Index = s.frames
	f.Time = t
	f.Dt = dt
	f.Dragging = s.dragging
	s.frames++
	return f
}

// Snapshot returns the current state without stepping.
func (s *Stepper) Snapshot() Frame {
	f := snapshot(s.world)
	f.Index = s.frames
	f.Time = s.lastTime
	f.Dragging = s.dragging
	return f
}

func (s *Stepper) frameDt(t float64) float64 {
	if !s.started {
		s.started = true
		s.lastTime = t
		return 0
	}
	dt := t - s.lastTime
	s.lastTime = t
	if !(dt > 0) {
		return 0
	}
	return math.Min(dt, s.cfg.MaxFrameDt)
}

// applyInput writes the pointer target straight into the anchor. Dynamic
// anchors lose their implied velocity so the override is exact.
func (s *Stepper) applyInput() {
	s.dragging = false
	anchor := s.world.Anchor()
	if s.input == nil || anchor == nil {
		return
	}
	target, engaged := s.input.Sample(anchor.Position())
	if !engaged {
		return
	}
	s.dragging = true
	anchor.Place(target)
}

// substep runs springs, fields, then integration with step h.
func (s *Stepper) substep(h float64) {
	s.world.ApplySprings()
	s.world.ApplyFields()
	s.world.Integrate(h)
}
