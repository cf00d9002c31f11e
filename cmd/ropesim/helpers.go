package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/P4GAN/PhysicsSims/internal/config"
	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/sim"
	"github.com/P4GAN/PhysicsSims/internal/storage"
)

// metaConfig returns the config a run was recorded with. Runs saved without
// one fall back to their preset.
func metaConfig(meta *storage.RunMetadata) *config.Config {
	if meta.Config != nil {
		return meta.Config
	}
	if cfg := config.GetPreset(meta.Preset); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// particleIndex resolves the --particle flag, mapping -1 to the anchor of
// the run's world.
func particleIndex(meta *storage.RunMetadata) (int, error) {
	if particle >= 0 {
		return particle, nil
	}
	s, err := metaConfig(meta).NewStepper()
	if err != nil {
		return 0, err
	}
	if s.World().AnchorIndex() < 0 {
		return 0, fmt.Errorf("%w: run has no anchor, pass --particle", dynamo.ErrUnknownParticle)
	}
	return s.World().AnchorIndex(), nil
}

// frameAt rebuilds the world of cfg and places every particle at its recorded
// position, so springs and strain can be drawn for a stored row.
func frameAt(cfg *config.Config, row []float64) (sim.Frame, error) {
	s, err := cfg.NewStepper()
	if err != nil {
		return sim.Frame{}, err
	}
	ps := s.World().Particles()
	if len(row) != 2*len(ps) {
		return sim.Frame{}, fmt.Errorf("%w: row has %d particles, world has %d", dynamo.ErrUnknownParticle, len(row)/2, len(ps))
	}
	for i, p := range ps {
		p.Place(dynamo.V(row[2*i], row[2*i+1]))
	}
	return s.Snapshot(), nil
}

func centred(data []float64) []float64 {
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - mean
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
