// Package analysis inspects recorded runs.
//
// Recorded states are flattened particle positions, x0, y0, x1, y1, ...,
// one row per frame. The tools here work on those rows:
//
//   - [DominantFrequency]: strongest oscillation in a particle coordinate
//   - [Separation]: how far two runs of the same rope drift apart
//   - [GeneratePhasePortrait]: position against velocity for one particle
//
// # Sub-step comparison
//
// Runs that differ only in sub-step count start identical, so their
// separation measures integration error:
//
//	sep := analysis.Separation(fine.States, coarse.States)
//	fmt.Printf("max %.3g rms %.3g\n", sep.Max, sep.RMS)
package analysis
