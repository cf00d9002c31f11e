package sim

import (
	"fmt"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
)

const (
	DefaultSubsteps   = 16
	DefaultMaxFrameDt = 0.05
	DefaultFPS        = 60.0
	DefaultDuration   = 10.0
	DefaultBound      = 1e6
)

// InputSource is sampled once at the start of every step. It receives the
// anchor's current position so engagement can be decided against it.
type InputSource interface {
	Sample(anchor dynamo.Vec) (target dynamo.Vec, engaged bool)
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(w *physics.World, f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// Driver is called with the frame timestamp before each headless step.
// Scripted input uses it to feed pointer events on schedule.
type Driver interface {
	Drive(t float64)
}

type StepConfig struct {
	Substeps   int
	MaxFrameDt float64
}

func DefaultStepConfig() StepConfig {
	return StepConfig{
		Substeps:   DefaultSubsteps,
		MaxFrameDt: DefaultMaxFrameDt,
	}
}

func (c StepConfig) Validate() error {
	if c.Substeps < 1 {
		return fmt.Errorf("%w: substeps must be at least 1, got %d", dynamo.ErrParameterBounds, c.Substeps)
	}
	if !(c.MaxFrameDt > 0) {
		return fmt.Errorf("%w: max frame dt must be positive, got %g", dynamo.ErrParameterBounds, c.MaxFrameDt)
	}
	return nil
}

type RunConfig struct {
	FPS      float64
	Duration float64
	// Bound is the position magnitude beyond which the run counts as diverged.
	Bound float64
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
		Bound:    DefaultBound,
	}
}

type Result struct {
	Times    []float64
	States   [][]float64
	Metrics  map[string]float64
	Final    Frame
	Frames   int
	Diverged bool
	Errors   []error
}
