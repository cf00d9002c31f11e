package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/P4GAN/PhysicsSims/internal/dynamo"
	"github.com/P4GAN/PhysicsSims/internal/physics"
	"github.com/P4GAN/PhysicsSims/internal/viewport"
)

type scriptedInput struct {
	target  dynamo.Vec
	engaged bool
	seen    []dynamo.Vec
	onCall  func()
}

func (in *scriptedInput) Sample(anchor dynamo.Vec) (dynamo.Vec, bool) {
	in.seen = append(in.seen, anchor)
	if in.onCall != nil {
		in.onCall()
	}
	return in.target, in.engaged
}

// oscillator is a single bob hanging 0.1 below its rest length from a pin,
// with no gravity, drag or damping.
func oscillator(substeps int) (*Stepper, *physics.Dynamic) {
	w := physics.NewWorld()
	pin := w.AddFixed(dynamo.V(0, 0), 1)
	bob, err := w.AddDynamic(dynamo.V(0, -1.1), 1, 1)
	Expect(err).NotTo(HaveOccurred())
	_, err = w.Connect(bob, pin, 5000, 1, 0)
	Expect(err).NotTo(HaveOccurred())
	Expect(w.SetAnchor(bob)).To(Succeed())

	s, err := NewStepper(w, StepConfig{Substeps: substeps, MaxFrameDt: 0.1})
	Expect(err).NotTo(HaveOccurred())
	return s, w.Particles()[bob].(*physics.Dynamic)
}

func defaultRope() *Stepper {
	w, err := physics.NewChain(physics.DefaultChainSpec())
	Expect(err).NotTo(HaveOccurred())
	s, err := NewStepper(w, DefaultStepConfig())
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Stepper", func() {
	Describe("construction", func() {
		It("rejects fewer than one sub-step", func() {
			_, err := NewStepper(physics.NewWorld(), StepConfig{Substeps: 0, MaxFrameDt: 0.05})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("rejects a non-positive frame clamp", func() {
			_, err := NewStepper(physics.NewWorld(), StepConfig{Substeps: 4, MaxFrameDt: 0})
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("validates sub-step changes", func() {
			s := defaultRope()
			Expect(s.SetSubsteps(-2)).To(MatchError(dynamo.ErrParameterBounds))
			Expect(s.SetSubsteps(4)).To(Succeed())
			Expect(s.Config().Substeps).To(Equal(4))
		})
	})

	Describe("frame timing", func() {
		It("only records the clock on the first frame", func() {
			s := defaultRope()
			before := s.Snapshot().Positions()

			f := s.Step(12.5)
			Expect(f.Dt).To(BeZero())
			Expect(f.Positions()).To(Equal(before))
		})

		It("clamps long gaps to the maximum frame delta", func() {
			s := defaultRope()
			s.Step(0)
			f := s.Step(30)
			Expect(f.Dt).To(Equal(DefaultMaxFrameDt))
		})

		It("skips integration when time does not advance", func() {
			s := defaultRope()
			s.Step(1)
			s.Step(1.01)
			before := s.Snapshot().Positions()

			f := s.Step(0.5)
			Expect(f.Dt).To(BeZero())
			Expect(f.Positions()).To(Equal(before))

			f = s.Step(0.51)
			Expect(f.Dt).To(BeNumerically("~", 0.01, 1e-12))
		})

		It("treats the frame after a resync as a first frame", func() {
			s := defaultRope()
			s.Step(0)
			s.Resync()
			Expect(s.Step(1000).Dt).To(BeZero())
			Expect(s.Step(1000.01).Dt).To(BeNumerically("~", 0.01, 1e-9))
		})

		It("numbers frames in order", func() {
			s := defaultRope()
			Expect(s.Step(0).Index).To(Equal(0))
			Expect(s.Step(0.01).Index).To(Equal(1))
			Expect(s.Frames()).To(Equal(2))
		})
	})

	Describe("integration", func() {
		It("matches a single Verlet step from rest", func() {
			w := physics.NewWorld(physics.Gravity{G: 9.8})
			i, err := w.AddDynamic(dynamo.V(0, 0), 1, 1)
			Expect(err).NotTo(HaveOccurred())
			s, err := NewStepper(w, StepConfig{Substeps: 1, MaxFrameDt: 1})
			Expect(err).NotTo(HaveOccurred())

			s.Step(0)
			s.Step(0.0625)
			p := w.Particles()[i].Position()
			Expect(p.X).To(BeZero())
			Expect(p.Y).To(BeNumerically("~", -0.03828125, 1e-12))
		})

		It("holds a spring at rest length in equilibrium", func() {
			w := physics.NewWorld(physics.Gravity{G: 0}, physics.Drag{C: 0.5})
			pin := w.AddFixed(dynamo.V(0, 0), 1)
			bob, _ := w.AddDynamic(dynamo.V(0, -1), 1, 1)
			_, err := w.Connect(bob, pin, 2000, 1, 0.5)
			Expect(err).NotTo(HaveOccurred())
			s, _ := NewStepper(w, DefaultStepConfig())

			for i := 0; i <= 200; i++ {
				s.Step(float64(i) / 60)
			}
			p := w.Particles()[bob].Position()
			Expect(p.X).To(BeNumerically("==", 0))
			Expect(p.Y).To(BeNumerically("==", -1))
		})

		It("stays bounded with enough sub-steps", func() {
			s, bob := oscillator(16)
			for i := 0; i <= 50; i++ {
				s.Step(0.1 * float64(i))
				Expect(dynamo.IsFinite(bob.Position())).To(BeTrue())
				Expect(dynamo.Norm(bob.Position())).To(BeNumerically("<", 1.5))
				Expect(dynamo.Norm(bob.Position())).To(BeNumerically(">", 0.5))
			}
			Expect(bob.Position().X).To(BeZero())
		})

		It("diverges with a single sub-step at the same frame rate", func() {
			s, bob := oscillator(1)
			for i := 0; i <= 20; i++ {
				s.Step(0.1 * float64(i))
			}
			p := bob.Position()
			Expect(!dynamo.IsFinite(p) || dynamo.Norm(p) > 1e3).To(BeTrue())
		})
	})

	Describe("anchor override", func() {
		It("places the anchor exactly on the pointer target", func() {
			s := defaultRope()
			for i := 0; i < 30; i++ {
				s.Step(float64(i) / 60)
			}
			in := &scriptedInput{target: dynamo.V(3.25, 4.5), engaged: true}
			s.SetInput(in)
			s.applyInput()

			anchor := s.World().Anchor().(*physics.Dynamic)
			Expect(anchor.Position()).To(Equal(in.target))
			Expect(anchor.Previous()).To(Equal(in.target))
		})

		It("reports the override in the frame even without integration", func() {
			s := defaultRope()
			in := &scriptedInput{target: dynamo.V(1, 2), engaged: true}
			s.SetInput(in)

			f := s.Step(0)
			Expect(f.Dragging).To(BeTrue())
			pos, ok := f.AnchorPosition()
			Expect(ok).To(BeTrue())
			Expect(pos).To(Equal(in.target))
		})

		It("samples the anchor before the sub-steps run", func() {
			s := defaultRope()
			start := s.World().Anchor().Position()
			in := &scriptedInput{}
			s.SetInput(in)

			s.Step(0)
			s.Step(0.02)
			Expect(in.seen).To(HaveLen(2))
			Expect(in.seen[0]).To(Equal(start))
			Expect(in.seen[1]).To(Equal(start))
		})

		It("leaves the anchor alone when the pointer is not engaged", func() {
			s := defaultRope()
			s.SetInput(&scriptedInput{target: dynamo.V(100, 100)})
			s.Step(0)
			f := s.Step(0.02)
			Expect(f.Dragging).To(BeFalse())
			pos, _ := f.AnchorPosition()
			Expect(pos).NotTo(Equal(dynamo.V(100, 100)))
		})

		It("moves a fixed anchor", func() {
			spec := physics.DefaultChainSpec()
			spec.Segments = 5
			spec.PinBothEnds = true
			w, err := physics.NewChain(spec)
			Expect(err).NotTo(HaveOccurred())
			s, _ := NewStepper(w, DefaultStepConfig())
			s.SetInput(&scriptedInput{target: dynamo.V(12, 9), engaged: true})

			s.Step(0)
			f := s.Step(0.02)
			pos, _ := f.AnchorPosition()
			Expect(pos).To(Equal(dynamo.V(12, 9)))
		})
	})

	Describe("re-entrancy", func() {
		It("panics when stepped from inside a step", func() {
			s := defaultRope()
			in := &scriptedInput{}
			in.onCall = func() { s.Step(1) }
			s.SetInput(in)
			Expect(func() { s.Step(0) }).To(Panic())

			s.SetInput(nil)
			Expect(func() { s.Step(2) }).NotTo(Panic())
		})
	})

	Describe("render sink", func() {
		It("emits every particle and spring in chain order", func() {
			s := defaultRope()
			f := s.Step(0)
			spec := physics.DefaultChainSpec()
			Expect(f.Particles).To(HaveLen(spec.Segments + 1))
			Expect(f.Springs).To(HaveLen(spec.Segments))
			Expect(f.Particles[0].Fixed).To(BeTrue())
			Expect(f.Particles[spec.Segments].Anchor).To(BeTrue())
			Expect(f.Particles[spec.Segments].Radius).To(Equal(spec.EndRadius))
			Expect(f.Springs[0].B).To(Equal(f.Particles[0].Center))
		})

		It("projects onto the display surface", func() {
			s := defaultRope()
			m, err := viewport.New(15, 10, 1500, 1000)
			Expect(err).NotTo(HaveOccurred())

			d := s.Step(0).Display(m)
			Expect(d.Circles[0].Center.X).To(BeNumerically("~", 750, 1e-9))
			Expect(d.Circles[0].Center.Y).To(BeNumerically("~", 100, 1e-9))
			Expect(d.Lines).To(HaveLen(physics.DefaultChainSpec().Segments))
		})
	})
})
