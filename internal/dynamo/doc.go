// Package dynamo provides the primitives shared by every layer of the
// particle–spring simulation.
//
//   - [Vec]: 2-D position, velocity, acceleration and force values
//   - domain errors returned from constructors and recorded by runners
//   - [SimulationError]: wraps an error with frame and time context
//
// Vector arithmetic is delegated to gonum's spatial/r2 package; [Vec] is an
// alias so values flow between the two without conversion.
//
// # Example
//
//	d := r2.Sub(a.Position(), b.Position())
//	length := dynamo.Norm(d)
package dynamo
