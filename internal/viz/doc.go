// Package viz is the live terminal view of the rope.
//
// The view draws the chain on a braille [Canvas] and feeds mouse events into
// a [control.Drag], so the free end can be grabbed and thrown from the
// terminal. Ticks arrive at 60 Hz and carry wall-clock timestamps; the
// stepper turns them into clamped frame steps.
//
// # Key Bindings
//
//	Mouse - Drag the anchor particle
//	Space - Pause/Resume simulation
//	R     - Rebuild the world from the config
//	S     - Cycle sub-steps per frame (1, 4, 16, 32)
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
