package config

import "sort"

// Presets are built from DefaultConfig with a few fields changed.
var Presets = map[string]func(*Config){
	"rope": func(c *Config) {},
	"particle": func(c *Config) {
		c.Chain.EndMass = c.Chain.Mass
		c.Chain.EndRadius = c.Chain.Radius
	},
	"pendulum": func(c *Config) {
		c.Chain.Segments = 1
		c.Chain.OffsetX, c.Chain.OffsetY = 3, 0
		c.Chain.RestLength = 3
		c.Chain.Stiffness = 5000
		c.Chain.Damping = 0
		c.Chain.EndMass = 5
		c.Chain.EndRadius = 6
		c.Physics.Drag = 0
	},
	"bridge": func(c *Config) {
		c.Chain.OriginX, c.Chain.OriginY = 2, 7
		c.Chain.OffsetX, c.Chain.OffsetY = 0.4, 0
		c.Chain.Segments = 27
		c.Chain.RestLength = 0.35
		c.Chain.EndMass = c.Chain.Mass
		c.Chain.EndRadius = c.Chain.Radius
		c.Chain.PinBothEnds = true
	},
	"stiff": func(c *Config) {
		c.Chain.Stiffness = 20000
		c.Physics.Substeps = 32
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
