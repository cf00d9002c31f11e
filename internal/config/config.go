package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

const (
	DefaultPreset        = "rope"
	DefaultSurfaceWidth  = 1200
	DefaultSurfaceHeight = 800
	DefaultGrabRadiusSq  = 1.0
)

type Config struct {
	Preset  string        `yaml:"preset"`
	World   WorldConfig   `yaml:"world"`
	Chain   ChainConfig   `yaml:"chain"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
	Run     RunConfig     `yaml:"run"`
}

type WorldConfig struct {
	SimWidth      float64 `yaml:"sim_width"`
	SimHeight     float64 `yaml:"sim_height"`
	SurfaceWidth  float64 `yaml:"surface_width"`
	SurfaceHeight float64 `yaml:"surface_height"`
}

type ChainConfig struct {
	OriginX     float64 `yaml:"origin_x"`
	OriginY     float64 `yaml:"origin_y"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	Segments    int     `yaml:"segments"`
	Mass        float64 `yaml:"mass"`
	EndMass     float64 `yaml:"end_mass"`
	Radius      float64 `yaml:"radius"`
	EndRadius   float64 `yaml:"end_radius"`
	PinRadius   float64 `yaml:"pin_radius"`
	Stiffness   float64 `yaml:"stiffness"`
	RestLength  float64 `yaml:"rest_length"`
	Damping     float64 `yaml:"damping"`
	PinBothEnds bool    `yaml:"pin_both_ends"`
}

type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Drag       float64 `yaml:"drag"`
	Substeps   int     `yaml:"substeps"`
	MaxFrameDt float64 `yaml:"max_frame_dt"`
}

type InputConfig struct {
	GrabRadiusSq float64 `yaml:"grab_radius_sq"`
}

type RunConfig struct {
	FPS      float64 `yaml:"fps"`
	Duration float64 `yaml:"duration"`
	Bound    float64 `yaml:"bound"`
}

func DefaultConfig() *Config {
	spec := physics.DefaultChainSpec()
	return &Config{
		Preset: DefaultPreset,
		World: WorldConfig{
			SimWidth:      viewport.DefaultSimWidth,
			SimHeight:     viewport.DefaultSimHeight,
			SurfaceWidth:  DefaultSurfaceWidth,
			SurfaceHeight: DefaultSurfaceHeight,
		},
		Chain: chainFromSpec(spec),
		Physics: PhysicsConfig{
			Gravity:    spec.Gravity,
			Drag:       spec.Drag,
			Substeps:   sim.DefaultSubsteps,
			MaxFrameDt: sim.DefaultMaxFrameDt,
		},
		Input: InputConfig{GrabRadiusSq: DefaultGrabRadiusSq},
		Run: RunConfig{
			FPS:      sim.DefaultFPS,
			Duration: sim.DefaultDuration,
			Bound:    sim.DefaultBound,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns an independent copy.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

func (c *Config) Validate() error {
	if _, err := c.Mapping(); err != nil {
		return err
	}
	if err := c.StepConfig().Validate(); err != nil {
		return err
	}
	if c.Chain.Segments < 1 {
		return fmt.Errorf("%w: chain needs at least one segment, got %d", dynamo.ErrParameterBounds, c.Chain.Segments)
	}
	if !(c.Physics.Gravity >= 0) || !(c.Physics.Drag >= 0) {
		return fmt.Errorf("%w: gravity %g and drag %g must be non-negative", dynamo.ErrParameterBounds, c.Physics.Gravity, c.Physics.Drag)
	}
	if !(c.Input.GrabRadiusSq > 0) {
		return fmt.Errorf("%w: grab radius squared must be positive, got %g", dynamo.ErrParameterBounds, c.Input.GrabRadiusSq)
	}
	if !(c.Run.FPS > 0) || !(c.Run.Duration > 0) || !(c.Run.Bound > 0) {
		return fmt.Errorf("%w: run needs positive fps, duration and bound", dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) ChainSpec() physics.ChainSpec {
	ch := c.Chain
	return physics.ChainSpec{
		Origin:      dynamo.V(ch.OriginX, ch.OriginY),
		Offset:      dynamo.V(ch.OffsetX, ch.OffsetY),
		Segments:    ch.Segments,
		Mass:        ch.Mass,
		EndMass:     ch.EndMass,
		Radius:      ch.Radius,
		EndRadius:   ch.EndRadius,
		PinRadius:   ch.PinRadius,
		Stiffness:   ch.Stiffness,
		RestLength:  ch.RestLength,
		Damping:     ch.Damping,
		PinBothEnds: ch.PinBothEnds,
		Gravity:     c.Physics.Gravity,
		Drag:        c.Physics.Drag,
	}
}

func (c *Config) StepConfig() sim.StepConfig {
	return sim.StepConfig{
		Substeps:   c.Physics.Substeps,
		MaxFrameDt: c.Physics.MaxFrameDt,
	}
}

func (c *Config) RunConfig() sim.RunConfig {
	return sim.RunConfig{
		FPS:      c.Run.FPS,
		Duration: c.Run.Duration,
		Bound:    c.Run.Bound,
	}
}

func (c *Config) Mapping() (viewport.Mapping, error) {
	return viewport.New(c.World.SimWidth, c.World.SimHeight, c.World.SurfaceWidth, c.World.SurfaceHeight)
}

// NewStepper validates the config and builds a fresh world and stepper.
func (c *Config) NewStepper() (*sim.Stepper, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w, err := physics.NewChain(c.ChainSpec())
	if err != nil {
		return nil, err
	}
	return sim.NewStepper(w, c.StepConfig())
}

func chainFromSpec(s physics.ChainSpec) ChainConfig {
	return ChainConfig{
		OriginX:     s.Origin.X,
		OriginY:     s.Origin.Y,
		OffsetX:     s.Offset.X,
		OffsetY:     s.Offset.Y,
		Segments:    s.Segments,
		Mass:        s.Mass,
		EndMass:     s.EndMass,
		Radius:      s.Radius,
		EndRadius:   s.EndRadius,
		PinRadius:   s.PinRadius,
		Stiffness:   s.Stiffness,
		RestLength:  s.RestLength,
		Damping:     s.Damping,
		PinBothEnds: s.PinBothEnds,
	}
}
