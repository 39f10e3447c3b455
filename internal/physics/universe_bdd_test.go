package physics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/verletsim/internal/physics"
)

var _ = Describe("Universe", func() {
	var u *physics.Universe

	BeforeEach(func() {
		u = physics.New(0, rand.New(rand.NewSource(42)))
		u.SetGravity(0)
	})

	Describe("collision pass", func() {
		It("separates equal overlapping particles symmetrically", func() {
			u.AddAt(0, 0, 0, 0, 10, 0)
			u.AddAt(5, 0, 5, 0, 10, 0)

			u.SolveCollisions()

			ps := u.Particles()
			Expect(ps[0].Pos.X).To(BeNumerically("~", -7.5, 1e-4))
			Expect(ps[1].Pos.X).To(BeNumerically("~", 12.5, 1e-4))
			Expect(ps[0].Pos.X + ps[1].Pos.X).To(BeNumerically("~", 5, 1e-4))
		})

		It("moves closer to contact distance without overshooting", func() {
			u.AddAt(0, 0, 0, 0, 10, 0)
			u.AddAt(3, 4, 3, 4, 10, 0)
			u.SetResponseCoeff(0.5)

			u.SolveCollisions()

			ps := u.Particles()
			d := ps[0].Pos.Sub(ps[1].Pos).Len()
			Expect(d).To(BeNumerically(">", 5))
			Expect(d).To(BeNumerically("<=", 20))
		})

		It("leaves fixed particles in place", func() {
			anchor := u.AddAt(0, 0, 0, 0, 10, 0)
			u.AddAt(0, 5, 0, 5, 10, 0)
			u.Fix(anchor)

			u.SolveCollisions()

			ps := u.Particles()
			Expect(ps[0].Pos).To(Equal(physics.Vec2{}))
			Expect(ps[1].Pos.Y).To(BeNumerically("~", 20, 1e-4))
		})

		It("accepts constraints on ids that do not exist", func() {
			u.Fix(1000)
			u.Link(2000, 3000)
			u.AddAt(320, 320, 320, 320, 10, 0)

			Expect(func() { u.Tick(1) }).NotTo(Panic())
			Expect(u.Particles()[0].Pos).To(Equal(physics.Vec2{X: 320, Y: 320}))
		})
	})

	Describe("links", func() {
		It("is symmetric when created by Link", func() {
			u.Link(1, 2)
			p, ok := u.Constraints().Partner(2)
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(uint32(1)))
		})

		It("overwrites earlier links of either id", func() {
			u.Link(1, 2)
			u.Link(2, 3)

			p, _ := u.Constraints().Partner(2)
			Expect(p).To(Equal(uint32(3)))
			p, _ = u.Constraints().Partner(1)
			Expect(p).To(Equal(uint32(2)))
		})

		It("keeps a hanging chain close to contact spacing", func() {
			u.AnchorFixed = true
			u.SetGravity(0.001)
			ids := u.AddChain(physics.Vec2{X: 320, Y: 100}, physics.Vec2{X: 420, Y: 100}, 6, 8, 120, true, false)

			for i := 0; i < 400; i++ {
				u.Tick(4)
			}

			ps := u.Particles()
			Expect(ps[0].Pos).To(Equal(physics.Vec2{X: 320, Y: 100}))
			for i := 1; i < len(ids); i++ {
				gap := ps[i].Pos.Sub(ps[i-1].Pos).Len()
				Expect(gap).To(BeNumerically("<", 24))
			}
		})
	})

	Describe("boundary", func() {
		It("leaves particles well inside untouched", func() {
			u.AddAt(400, 320, 400, 320, 10, 0)
			u.ApplyConstraints()
			Expect(u.Particles()[0].Pos).To(Equal(physics.Vec2{X: 400, Y: 320}))
		})

		It("projects escaping particles onto the ray from the center", func() {
			u.AddAt(800, 800, 800, 800, 20, 0)
			u.ApplyConstraints()

			p := u.Particles()[0]
			off := p.Pos.Sub(u.Center)
			Expect(off.Len()).To(BeNumerically("~", 300, 1e-3))
			Expect(off.X).To(BeNumerically("~", off.Y, 1e-3))
		})

		It("collapses a zero-radius boundary onto the center", func() {
			u.SetBoundary(10, 10, 0)
			u.AddAt(50, 50, 50, 50, 0, 0)
			u.ApplyConstraints()

			p := u.Particles()[0]
			Expect(p.Pos.X).To(BeNumerically("~", 10, 1e-4))
			Expect(p.Pos.Y).To(BeNumerically("~", 10, 1e-4))
		})
	})

	Describe("a full tick", func() {
		It("keeps a random crowd inside the disc", func() {
			crowd := physics.New(60, rand.New(rand.NewSource(9)))
			crowd.SetGravity(0.001)

			for i := 0; i < 200; i++ {
				crowd.Tick(4)
			}

			for _, p := range crowd.Particles() {
				Expect(p.Pos.IsValid()).To(BeTrue())
				d := p.Pos.Sub(crowd.Center).Len()
				Expect(d).To(BeNumerically("<=", crowd.BoundaryRadius-p.Radius+1e-2))
			}
		})
	})
})
