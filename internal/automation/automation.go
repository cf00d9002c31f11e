package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/control"
	"github.com/P4GAN/PhysicsSims/internal/metrics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one headless run of a preset with scripted pointer input.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Duration float64            `yaml:"duration"`
	FPS      float64            `yaml:"fps"`
	Params   map[string]float64 `yaml:"params"`
	Gestures []Gesture          `yaml:"gestures"`
	SaveAs   string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	for i, step := range scenario.Steps {
		if err := ValidateGestures(step.Gestures); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &scenario, nil
}

// Config resolves the preset, run settings and params of one step.
func (s ScenarioStep) Config() (*config.Config, error) {
	name := s.Preset
	if name == "" {
		name = config.DefaultPreset
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	if s.Duration > 0 {
		cfg.Run.Duration = s.Duration
	}
	if s.FPS > 0 {
		cfg.Run.FPS = s.FPS
	}
	for k, v := range s.Params {
		if err := SetParam(cfg, k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// StepResult pairs a run with the config that produced it.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// RunScenario executes all steps in a scenario. Progress lines go to out,
// which may be nil.
func RunScenario(ctx context.Context, scenario *Scenario, out io.Writer) ([]StepResult, error) {
	if out == nil {
		out = io.Discard
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "Running step %d/%d: %s (%d gestures)\n", i+1, len(scenario.Steps), cfg.Preset, len(step.Gestures))

		runner, err := newGestureRunner(cfg, step.Gestures)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := runner.Run(ctx, cfg.RunConfig())
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// newGestureRunner builds a runner whose anchor is dragged by gestures
// replayed in surface pixels.
func newGestureRunner(cfg *config.Config, gestures []Gesture) (*sim.Runner, error) {
	mapping, err := cfg.Mapping()
	if err != nil {
		return nil, err
	}
	drag, err := control.NewDrag(mapping, cfg.Input.GrabRadiusSq)
	if err != nil {
		return nil, err
	}
	runner, err := newRunner(cfg)
	if err != nil {
		return nil, err
	}
	runner.SetInput(drag)
	runner.SetDriver(NewPlayer(gestures, drag))
	return runner, nil
}

func newRunner(cfg *config.Config) (*sim.Runner, error) {
	s, err := cfg.NewStepper()
	if err != nil {
		return nil, err
	}
	r := sim.NewRunner(s)
	for _, m := range metrics.Standard(cfg.Run.Bound) {
		r.AddMetric(m)
	}
	return r, nil
}
