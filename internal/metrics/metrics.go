// Package metrics provides scalar observers for headless runs.
package metrics

import "github.com/P4GAN/PhysicsSims/internal/sim"

// Standard returns the metrics recorded by every headless run.
func Standard(bound float64) []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyDrift(),
		NewStability(bound),
		NewMaxStrain(),
		NewDragShare(),
	}
}
