package physics

import (
	"fmt"
	"math"
)

// Epsilon is added to the length before normalizing so the zero vector never
// divides by zero.
const Epsilon float32 = 0x1p-23

// Vec2 is an immutable 2D vector.
type Vec2 struct {
	X, Y float32
}

func Zero() Vec2 { return Vec2{} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(k float32) Vec2 { return Vec2{v.X * k, v.Y * k} }

func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Norm returns v scaled to (almost) unit length. Near-zero vectors come back
// near zero rather than NaN.
func (v Vec2) Norm() Vec2 {
	l := v.Len() + Epsilon
	return Vec2{v.X / l, v.Y / l}
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	x, y := float64(v.X), float64(v.Y)
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("[%g, %g]", v.X, v.Y)
}
