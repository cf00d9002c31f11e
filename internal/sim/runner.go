package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

// Runner drives a Stepper headlessly with synthetic frame timestamps.
type Runner struct {
	stepper   *Stepper
	driver    Driver
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *Stepper) *Runner {
	return &Runner{
		stepper:   s,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) Stepper() *Stepper       { return r.stepper }
func (r *Runner) AddMetric(m Metric)      { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)  { r.observers = append(r.observers, o) }
func (r *Runner) SetDriver(d Driver)      { r.driver = d }
func (r *Runner) SetInput(in InputSource) { r.stepper.SetInput(in) }

// Run steps the world at cfg.FPS for cfg.Duration seconds of simulated time.
// Divergence stops the run early and is reported in Result.Errors, not as
// the returned error.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(math.Round(cfg.Duration * cfg.FPS))
	result := &Result{
		Times:   make([]float64, 0, frames+1),
		States:  make([][]float64, 0, frames+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.stepper.Resync()
	for i := 0; i <= frames; i++ {
		select {
		case <-ctx.Done():
			r.finish(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		t := float64(i) / cfg.FPS
		if r.driver != nil {
			r.driver.Drive(t)
		}
		f := r.stepper.Step(t)

		for _, m := range r.metrics {
			m.Observe(r.stepper.World(), f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f)
		}

		result.Times = append(result.Times, t)
		result.States = append(result.States, f.Positions())
		result.Final = f
		result.Frames++

		if !f.Within(cfg.Bound) {
			result.Diverged = true
			result.Errors = append(result.Errors, &dynamo.SimulationError{
				Frame:   f.Index,
				Time:    t,
				Wrapped: dynamo.ErrUnstable,
			})
			break
		}
	}

	r.finish(result)
	return result, nil
}

func (r *Runner) finish(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) validateConfig(cfg RunConfig) error {
	if !(cfg.FPS > 0) {
		return fmt.Errorf("%w: fps must be positive, got %g", dynamo.ErrParameterBounds, cfg.FPS)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrParameterBounds, cfg.Duration)
	}
	if !(cfg.Bound > 0) {
		return fmt.Errorf("%w: divergence bound must be positive, got %g", dynamo.ErrParameterBounds, cfg.Bound)
	}
	return nil
}
