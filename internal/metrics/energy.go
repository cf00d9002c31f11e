package metrics

import (
	"math"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// Breakdown splits the mechanical energy of a world.
type Breakdown struct {
	Kinetic       float64
	Gravitational float64
	Elastic       float64
}

func (b Breakdown) Total() float64 { return b.Kinetic + b.Gravitational + b.Elastic }

// Energies measures a world. Kinetic energy uses each particle's last
// one-step velocity; gravitational energy is relative to y = 0.
func Energies(w *physics.World) Breakdown {
	var b Breakdown
	g := w.Gravity()
	for _, d := range w.Dynamics() {
		b.Kinetic += 0.5 * d.Mass() * dynamo.Norm2(d.StepVelocity())
		b.Gravitational += d.Mass() * g * d.Position().Y
	}
	ps := w.Particles()
	for _, s := range w.Springs() {
		b.Elastic += s.Energy(ps)
	}
	return b
}

// Energy is the mean total energy over the observed frames.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *physics.World, _ sim.Frame) {
	e.totalEnergy += Energies(w).Total()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the first observed
// total energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *physics.World, _ sim.Frame) {
	energy := Energies(w).Total()

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current returns the total energy of the last observed frame.
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
