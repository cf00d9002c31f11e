// Package viewport maps between simulation space and a display surface.
//
// Simulation Y grows upward; display Y grows downward. Both spaces share
// the origin at their left edge, so x only scales while y scales and flips.
package viewport

import (
	"fmt"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
)

const (
	DefaultSimWidth  = 15.0
	DefaultSimHeight = 10.0
)

// Mapping is a pure function pair parameterised by both extents.
type Mapping struct {
	SimWidth, SimHeight         float64
	SurfaceWidth, SurfaceHeight float64
}

func New(simWidth, simHeight, surfaceWidth, surfaceHeight float64) (Mapping, error) {
	m := Mapping{
		SimWidth:      simWidth,
		SimHeight:     simHeight,
		SurfaceWidth:  surfaceWidth,
		SurfaceHeight: surfaceHeight,
	}
	return m, m.Validate()
}

func (m Mapping) Validate() error {
	if !(m.SimWidth > 0) || !(m.SimHeight > 0) {
		return fmt.Errorf("%w: simulation extent %gx%g", dynamo.ErrParameterBounds, m.SimWidth, m.SimHeight)
	}
	if !(m.SurfaceWidth > 0) || !(m.SurfaceHeight > 0) {
		return fmt.Errorf("%w: surface extent %gx%g", dynamo.ErrParameterBounds, m.SurfaceWidth, m.SurfaceHeight)
	}
	return nil
}

// Resize returns the mapping for a new surface size.
func (m Mapping) Resize(surfaceWidth, surfaceHeight float64) Mapping {
	m.SurfaceWidth, m.SurfaceHeight = surfaceWidth, surfaceHeight
	return m
}

// ToDisplay converts simulation coordinates to surface pixels.
func (m Mapping) ToDisplay(p dynamo.Vec) dynamo.Vec {
	return dynamo.Vec{
		X: p.X * m.SurfaceWidth / m.SimWidth,
		Y: m.SurfaceHeight - p.Y*m.SurfaceHeight/m.SimHeight,
	}
}

// ToSimulation converts surface pixels to simulation coordinates.
func (m Mapping) ToSimulation(p dynamo.Vec) dynamo.Vec {
	return dynamo.Vec{
		X: p.X * m.SimWidth / m.SurfaceWidth,
		Y: m.SimHeight - p.Y*m.SimHeight/m.SurfaceHeight,
	}
}
