// Package control turns pointer events into anchor drags.
//
// A [Drag] is written by the event source, from any goroutine, and sampled
// by the stepper once at the start of each step:
//
//	drag, _ := control.NewDrag(mapping, control.DefaultGrabRadiusSq)
//	stepper.SetInput(drag)
//	// event handlers
//	drag.PointerDown(px, py)
//	drag.PointerMove(px, py)
//	drag.PointerUp()
//
// Pointer coordinates are surface pixels. They are converted to simulation
// units with the current mapping when sampled.
package control
