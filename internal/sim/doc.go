// Package sim turns a physics world into rendered frames.
//
// A Stepper is called once per display frame with a timestamp in seconds.
// It derives the frame delta from the previous call, clamps it, lets the
// input source override the anchor, and then runs a fixed number of
// sub-steps of springs, fields and integration:
//
//	s, _ := sim.NewStepper(world, sim.DefaultStepConfig())
//	s.SetInput(drag)
//	frame := s.Step(now)
//	draw(frame.Display(mapping))
//
// Runner and Ensemble drive steppers headlessly with synthetic timestamps.
package sim
