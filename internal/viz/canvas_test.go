package viz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/physics"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected empty cell, got %U", c.Grid[0][0])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 2)
	c.FillCircle(2, 2, 2, 120)
	c.Clear()

	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != 0x2800 || c.Hue[row][col] != noHue {
				t.Fatalf("cell %d,%d not cleared", row, col)
			}
		}
	}
}

func TestDrawCircleSymmetric(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 4)

	for _, pt := range [][2]int{{14, 10}, {6, 10}, {10, 14}, {10, 6}} {
		col, row := pt[0]/2, pt[1]/4
		mask := rune(pixelMap[pt[1]%4][pt[0]%2])
		if c.Grid[row][col]&mask == 0 {
			t.Errorf("expected pixel at %v", pt)
		}
	}
}

func TestFillCircleTints(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(3, 3, 1, 240)

	if c.Hue[0][1] != 240 {
		t.Errorf("expected tinted cell, got %v", c.Hue[0][1])
	}
	if c.Hue[1][3] != noHue {
		t.Errorf("expected untinted cell, got %v", c.Hue[1][3])
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		hue  float32
		want int
	}{
		{noHue, -1},
		{0, 0},
		{359.9, hueBuckets - 1},
		{360, 0},
		{-15, hueBuckets - 1},
	}
	for _, tt := range tests {
		if got := bucket(tt.hue); got != tt.want {
			t.Errorf("bucket(%v) = %d, want %d", tt.hue, got, tt.want)
		}
	}
}

func TestHueColor(t *testing.T) {
	if got := HueColor(0); got != "#ff0000" {
		t.Errorf("HueColor(0) = %s, want #ff0000", got)
	}
	if got := HueColor(480); got != HueColor(120) {
		t.Errorf("hue should wrap: %s vs %s", got, HueColor(120))
	}
}

func TestRenderKeepsRows(t *testing.T) {
	c := NewCanvas(6, 3)
	c.FillCircle(4, 4, 2, 30)

	out := c.Render(ThemeCyberpunk)
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("expected 3 rows, got %d", n)
	}
}

func TestProjector(t *testing.T) {
	c := NewCanvas(40, 20) // 80x80 sub-pixels
	p := NewProjector(c, physics.Vec2{X: 320, Y: 320}, 320)

	x, y := p.Point(physics.Vec2{X: 320, Y: 320})
	if x != 40 || y != 40 {
		t.Errorf("center projected to %d,%d", x, y)
	}
	x, _ = p.Point(physics.Vec2{X: 640, Y: 320})
	if x < 78 || x > 80 {
		t.Errorf("boundary edge projected to x=%d", x)
	}
	if l := p.Length(320); l < 38 || l > 40 {
		t.Errorf("radius projected to %d", l)
	}
}

func TestDrawUniverse(t *testing.T) {
	u := physics.New(0, rand.New(rand.NewSource(1)))
	ids := u.AddChain(physics.Vec2{X: 200, Y: 320}, physics.Vec2{X: 440, Y: 320}, 3, 10, 90, true, false)

	c := NewCanvas(40, 20)
	DrawUniverse(c, u)

	x, y := NewProjector(c, u.Center, u.BoundaryRadius).Point(u.Particles()[ids[1]].Pos)
	if c.Hue[y/4][x/2] != 90 {
		t.Errorf("expected chain particle hue at its cell, got %v", c.Hue[y/4][x/2])
	}
}
