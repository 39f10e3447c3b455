package sim_test

import (
	"context"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

var _ = Describe("Simulator", func() {
	var (
		u *physics.Universe
		s *sim.Simulator
	)

	BeforeEach(func() {
		u = physics.New(0, rand.New(rand.NewSource(5)))
		s = sim.New(u)
	})

	It("splits each frame into substeps", func() {
		u.SetGravity(1)
		u.AddAt(320, 100, 320, 100, 5, 0)

		_, err := s.Run(context.Background(), sim.Config{Dt: 2, Duration: 2, SubSteps: 2})
		Expect(err).NotTo(HaveOccurred())

		// two ticks of dt=1: y += 1, then y += 1 + 1
		Expect(u.Particles()[0].Pos.Y).To(BeNumerically("~", 103, 1e-4))
	})

	It("behaves like a single tick when substeps is one", func() {
		twin := physics.New(0, rand.New(rand.NewSource(5)))
		for _, w := range []*physics.Universe{u, twin} {
			w.SetGravity(0.5)
			w.AddAt(300, 300, 299, 300, 10, 0)
			w.AddAt(315, 300, 315, 300, 10, 0)
		}

		_, err := s.Run(context.Background(), sim.Config{Dt: 3, Duration: 3, SubSteps: 1})
		Expect(err).NotTo(HaveOccurred())
		twin.Tick(3)

		Expect(u.Particles()).To(Equal(twin.Particles()))
	})

	It("lets a fountain fill an empty universe", func() {
		s.AddSpawner(sim.NewFountain(50, 10, rand.New(rand.NewSource(1))))

		res, err := s.Run(context.Background(), sim.Config{Dt: 16, Duration: 800, SubSteps: 4, RecordEvery: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Len()).To(BeNumerically(">", 5))
		Expect(res.Frames[len(res.Frames)-1].Particles).To(HaveLen(u.Len()))
	})
})
