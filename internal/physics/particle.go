package physics

import (
	"encoding/binary"
	"math"
)

// Particle is the fixed-layout record exposed to renderers through
// [Universe.Bytes]. Every field after ID is a 32-bit float.
type Particle struct {
	ID     uint32
	Pos    Vec2
	OldPos Vec2
	Radius float32
	Color  float32 // hue in degrees, cosmetic only
}

// Byte layout of a Particle record.
const (
	OffsetID     = 0
	OffsetPos    = 4
	OffsetOldPos = 12
	OffsetRadius = 20
	OffsetColor  = 24
	RecordSize   = 28
)

// Velocity is the implied per-tick velocity.
func (p Particle) Velocity() Vec2 { return p.Pos.Sub(p.OldPos) }

// Record decodes the i-th particle from a buffer obtained from
// [Universe.Bytes] (or a copy of one).
func Record(buf []byte, i int) Particle {
	b := buf[i*RecordSize : (i+1)*RecordSize]
	f := func(off int) float32 {
		return math.Float32frombits(binary.NativeEndian.Uint32(b[off:]))
	}
	return Particle{
		ID:     binary.NativeEndian.Uint32(b[OffsetID:]),
		Pos:    Vec2{f(OffsetPos), f(OffsetPos + 4)},
		OldPos: Vec2{f(OffsetOldPos), f(OffsetOldPos + 4)},
		Radius: f(OffsetRadius),
		Color:  f(OffsetColor),
	}
}
