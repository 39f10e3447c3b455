package physics

import (
	"math"
	"unsafe"
)

const (
	DefaultGravity        = 0.00001
	DefaultResponseCoeff  = 1.0
	DefaultCenterX        = 320.0
	DefaultCenterY        = 320.0
	DefaultBoundaryRadius = 320.0
	DefaultMinRadius      = 10.0
	DefaultMaxRadius      = 30.0
)

// RandSource supplies uniform samples in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float32() float32
}

// Universe is a self-contained particle world. Configuration fields may be
// changed between ticks and take effect on the next one; none are validated.
type Universe struct {
	Gravity        float32
	ResponseCoeff  float32
	Center         Vec2
	BoundaryRadius float32

	// Radius range for AddRandom.
	MinRadius, MaxRadius float32

	// AnchorFixed makes the integrator and the boundary pass skip fixed
	// particles as well. Off by default: only collisions consult the registry.
	AnchorFixed bool

	particles   []Particle
	constraints *Registry
	rnd         RandSource
	nextID      uint32
}

// New creates a universe with the default configuration and n random
// particles drawn from rnd.
func New(n int, rnd RandSource) *Universe {
	u := &Universe{
		Gravity:        DefaultGravity,
		ResponseCoeff:  DefaultResponseCoeff,
		Center:         Vec2{DefaultCenterX, DefaultCenterY},
		BoundaryRadius: DefaultBoundaryRadius,
		MinRadius:      DefaultMinRadius,
		MaxRadius:      DefaultMaxRadius,
		particles:      make([]Particle, 0, n),
		constraints:    NewRegistry(),
		rnd:            rnd,
	}
	for i := 0; i < n; i++ {
		u.AddRandom()
	}
	return u
}

func (u *Universe) Len() int { return len(u.particles) }

// Particles returns the live particle store. Callers must not modify it; the
// view is invalidated by the next add or Clear.
func (u *Universe) Particles() []Particle {
	return u.particles[:len(u.particles):len(u.particles)]
}

// Bytes returns the particle store as raw memory, Len()*RecordSize bytes long,
// without copying. Decode records with [Record]. Same lifetime as Particles.
func (u *Universe) Bytes() []byte {
	if len(u.particles) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(u.particles))), len(u.particles)*RecordSize)
}

func (u *Universe) Constraints() *Registry { return u.constraints }

// AddRandom places a particle uniformly inside the boundary disc with zero
// velocity, a radius in [MinRadius, MaxRadius) and a random hue.
func (u *Universe) AddRandom() uint32 {
	radius := u.MinRadius + (u.MaxRadius-u.MinRadius)*u.rnd.Float32()
	angle := 2 * math.Pi * float64(u.rnd.Float32())
	dist := float64(u.BoundaryRadius-radius) * math.Sqrt(float64(u.rnd.Float32()))
	pos := u.Center.Add(Vec2{
		X: float32(dist * math.Cos(angle)),
		Y: float32(dist * math.Sin(angle)),
	})
	color := 360 * u.rnd.Float32()
	return u.push(pos, pos, radius, color)
}

// AddAt adds a particle at (x, y) whose previous position is (oldX, oldY),
// giving it an initial velocity of (x-oldX, y-oldY) per tick.
func (u *Universe) AddAt(x, y, oldX, oldY, radius, color float32) uint32 {
	return u.push(Vec2{x, y}, Vec2{oldX, oldY}, radius, color)
}

func (u *Universe) push(pos, old Vec2, radius, color float32) uint32 {
	id := u.nextID
	u.nextID++
	u.particles = append(u.particles, Particle{
		ID:     id,
		Pos:    pos,
		OldPos: old,
		Radius: radius,
		Color:  color,
	})
	return id
}

// Clear drops every particle together with the fixed set and link map.
// Ids restart from zero.
func (u *Universe) Clear() {
	u.particles = u.particles[:0]
	u.constraints.Clear()
	u.nextID = 0
}

func (u *Universe) SetGravity(g float32)       { u.Gravity = g }
func (u *Universe) SetResponseCoeff(k float32) { u.ResponseCoeff = k }

func (u *Universe) SetBoundary(cx, cy, r float32) {
	u.Center = Vec2{cx, cy}
	u.BoundaryRadius = r
}

func (u *Universe) Fix(id uint32)    { u.constraints.Fix(id) }
func (u *Universe) Link(a, b uint32) { u.constraints.Link(a, b) }

// Tick advances the universe by one step of dt.
func (u *Universe) Tick(dt float32) {
	u.Update(dt)
	u.SolveCollisions()
	u.ApplyConstraints()
}

// AddChain adds n particles evenly spaced from `from` to `to`, links each to
// its successor and optionally fixes the end points. It returns the new ids
// in chain order.
func (u *Universe) AddChain(from, to Vec2, n int, radius, color float32, anchorFirst, anchorLast bool) []uint32 {
	if n <= 0 {
		return nil
	}
	ids := make([]uint32, n)
	step := Zero()
	if n > 1 {
		step = to.Sub(from).Scale(1 / float32(n-1))
	}
	for i := range ids {
		p := from.Add(step.Scale(float32(i)))
		ids[i] = u.push(p, p, radius, color)
		if i > 0 {
			u.Link(ids[i-1], ids[i])
		}
	}
	if anchorFirst {
		u.Fix(ids[0])
	}
	if anchorLast {
		u.Fix(ids[n-1])
	}
	return ids
}
