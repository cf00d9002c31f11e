package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preset != "rope" {
		t.Errorf("expected preset rope, got %s", cfg.Preset)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.ChainSpec() != physics.DefaultChainSpec() {
		t.Errorf("default chain should match the physics defaults:\n%+v\n%+v", cfg.ChainSpec(), physics.DefaultChainSpec())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("particle")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Chain.EndMass != cfg.Chain.Mass {
		t.Errorf("particle preset has no heavy end, got end mass %f", cfg.Chain.EndMass)
	}
	if cfg.Preset != "particle" {
		t.Errorf("expected preset name particle, got %s", cfg.Preset)
	}
}

func TestGetPresetIsFresh(t *testing.T) {
	a := GetPreset("rope")
	a.Chain.Segments = 3
	if b := GetPreset("rope"); b.Chain.Segments == 3 {
		t.Error("presets should not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"bridge", "particle", "pendulum", "rope", "stiff"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %v, got %v", want, presets)
		}
	}
}

func TestEveryPresetBuilds(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			s, err := cfg.NewStepper()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if s.World().Anchor() == nil {
				t.Error("every preset needs a draggable anchor")
			}
			if len(s.World().Springs()) < cfg.Chain.Segments {
				t.Errorf("expected at least %d springs, got %d", cfg.Chain.Segments, len(s.World().Springs()))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero substeps", func(c *Config) { c.Physics.Substeps = 0 }},
		{"zero frame clamp", func(c *Config) { c.Physics.MaxFrameDt = 0 }},
		{"no segments", func(c *Config) { c.Chain.Segments = 0 }},
		{"negative gravity", func(c *Config) { c.Physics.Gravity = -1 }},
		{"zero grab radius", func(c *Config) { c.Input.GrabRadiusSq = 0 }},
		{"zero fps", func(c *Config) { c.Run.FPS = 0 }},
		{"flat surface", func(c *Config) { c.World.SurfaceHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestNewStepperRejectsBadChain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chain.Mass = -2
	if _, err := cfg.NewStepper(); !errors.Is(err, dynamo.ErrInvalidMass) {
		t.Errorf("expected ErrInvalidMass, got %v", err)
	}
}

func TestSaveLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ropesim.yaml")

	cfg := GetPreset("stiff")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip changed the config:\n%+v\n%+v", loaded, cfg)
	}

	partial := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(partial, []byte("physics:\n  substeps: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err = Load(partial)
	if err != nil {
		t.Fatalf("load partial: %v", err)
	}
	if loaded.Physics.Substeps != 4 {
		t.Errorf("expected substeps 4, got %d", loaded.Physics.Substeps)
	}
	if loaded.Chain.Segments != DefaultConfig().Chain.Segments {
		t.Errorf("unset fields should keep defaults, got %d segments", loaded.Chain.Segments)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("physics: [1, 2"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected a parse error")
	}
}
