package sim

import (
	"sync"

	"github.com/san-kum/verletsim/internal/physics"
)

// FramePool recycles particle snapshot buffers.
type FramePool struct {
	pool sync.Pool
}

func NewFramePool() *FramePool {
	return &FramePool{
		pool: sync.Pool{
			New: func() interface{} {
				return make([]physics.Particle, 0, 64)
			},
		},
	}
}

func (p *FramePool) Get() []physics.Particle {
	return p.pool.Get().([]physics.Particle)[:0]
}

func (p *FramePool) Put(s []physics.Particle) {
	p.pool.Put(s[:0])
}

// Snapshot copies the current particle store into a pooled buffer.
func (p *FramePool) Snapshot(u *physics.Universe) []physics.Particle {
	return append(p.Get(), u.Particles()...)
}
