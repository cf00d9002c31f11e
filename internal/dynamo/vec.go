package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a point or displacement in simulation units.
type Vec = r2.Vec

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func Norm(v Vec) float64  { return r2.Norm(v) }
func Norm2(v Vec) float64 { return r2.Norm2(v) }

// Dist2 returns the squared distance between a and b.
func Dist2(a, b Vec) float64 { return r2.Norm2(r2.Sub(a, b)) }

// IsFinite reports whether both components are neither NaN nor Inf.
func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
