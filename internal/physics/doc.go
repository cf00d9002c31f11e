// Package physics provides the particle–spring model driven by the stepper.
//
//   - [Particle]: a point in the world, either [Fixed] or [Dynamic]
//   - [Spring]: linear two-body spring with optional axial damping
//   - [Gravity], [Drag]: per-sub-step force fields
//   - [World]: arena owning particles, springs and fields
//   - [NewChain]: builds a rope from a [ChainSpec]
//
// Dynamic particles use position Verlet: the previous position is the
// authoritative velocity state, and the derived velocity is only an input
// to drag and spring damping.
//
// # Sub-step protocol
//
// Within one sub-step all forces must be accumulated before any particle
// integrates:
//
//	w.ApplySprings()
//	w.ApplyFields()
//	w.Integrate(h)
package physics
