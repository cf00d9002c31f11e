package automation

import (
	"context"
	"fmt"
	"sort"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

var params = map[string]func(*config.Config, float64){
	"stiffness":    func(c *config.Config, v float64) { c.Chain.Stiffness = v },
	"damping":      func(c *config.Config, v float64) { c.Chain.Damping = v },
	"rest_length":  func(c *config.Config, v float64) { c.Chain.RestLength = v },
	"mass":         func(c *config.Config, v float64) { c.Chain.Mass = v },
	"end_mass":     func(c *config.Config, v float64) { c.Chain.EndMass = v },
	"segments":     func(c *config.Config, v float64) { c.Chain.Segments = int(v) },
	"gravity":      func(c *config.Config, v float64) { c.Physics.Gravity = v },
	"drag":         func(c *config.Config, v float64) { c.Physics.Drag = v },
	"substeps":     func(c *config.Config, v float64) { c.Physics.Substeps = int(v) },
	"max_frame_dt": func(c *config.Config, v float64) { c.Physics.MaxFrameDt = v },
}

// SetParam sets a named numeric parameter on cfg.
func SetParam(cfg *config.Config, name string, v float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
	}
	set(cfg, v)
	return nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs a preset across evenly spaced values of one parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	Frames      int
	Diverged    bool
	EnergyDrift float64
	MaxStrain   float64
	Final       []float64
}

// RunSweep runs every sweep point concurrently and returns them in order.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}

	values := make([]float64, sweep.NumSteps)
	for i := range values {
		if sweep.NumSteps == 1 {
			values[i] = sweep.ParamMin
			continue
		}
		values[i] = sweep.ParamMin + float64(i)*(sweep.ParamMax-sweep.ParamMin)/float64(sweep.NumSteps-1)
	}

	builders := make([]sim.Builder, len(values))
	for i, v := range values {
		cfg := sweep.Base.Clone()
		if err := SetParam(cfg, sweep.ParamName, v); err != nil {
			return nil, err
		}
		builders[i] = func() (*sim.Runner, error) { return newRunner(cfg) }
	}

	runs, err := sim.NewEnsemble(builders...).Run(ctx, sweep.Base.RunConfig())
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		var final []float64
		if len(r.States) > 0 {
			final = r.States[len(r.States)-1]
		}
		results[i] = SweepResult{
			ParamValue:  values[i],
			Frames:      r.Frames,
			Diverged:    r.Diverged,
			EnergyDrift: r.Metrics["energy_drift"],
			MaxStrain:   r.Metrics["max_strain"],
			Final:       final,
		}
	}
	return results, nil
}

// SweepStats counts stable and diverged sweep points.
func SweepStats(results []SweepResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Diverged {
			unstableCount++
		} else {
			stableCount++
		}
	}
	return
}
