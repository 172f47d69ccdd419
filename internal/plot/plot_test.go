package plot

import (
	"strings"
	"testing"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(10, 4)
	if c.Width() != 10 || c.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 10x4", c.Width(), c.Height())
	}
	for y := 0; y < c.Height(); y++ {
		if c.Row(y) != strings.Repeat(" ", 10) {
			t.Errorf("Row(%d) = %q, expected blank", y, c.Row(y))
		}
	}
}

func TestCanvasSetGet(t *testing.T) {
	c := NewCanvas(5, 5)
	c.Set(2, 3, 'X', ColorSolved)
	if got := c.Get(2, 3); got.Rune != 'X' || got.Color != ColorSolved {
		t.Errorf("Get(2, 3) = %+v", got)
	}

	// Out of bounds should be silent
	c.Set(-1, 0, 'A', ColorDefault)
	c.Set(0, 9, 'A', ColorDefault)
	if got := c.Get(9, 9); got.Rune != ' ' {
		t.Errorf("Get(out of bounds) = %q, expected space", got.Rune)
	}
}

func TestCanvasDrawText(t *testing.T) {
	c := NewCanvas(6, 1)
	c.DrawText(3, 0, "a=½xy", ColorLabel)
	if got := c.Row(0); got != "   a=½" {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(1, 1, 'X', ColorDefault)
	c.Resize(4, 2)
	if c.Width() != 4 || c.Height() != 2 || c.Get(1, 1).Rune != ' ' {
		t.Errorf("Resize() = %dx%d, cell %q", c.Width(), c.Height(), c.Get(1, 1).Rune)
	}
}

func TestCurveY(t *testing.T) {
	tests := []struct {
		curve Curve
		x     float64
		want  float64
	}{
		{Curve{A: 0, H: 400, K: 300}, 0, 300},
		{Curve{A: 0.005, H: 400, K: 300}, 400, 300},
		{Curve{A: 0.005, H: 400, K: 300}, 500, 350},
		{Curve{A: -1, H: 0, K: 0}, 3, -9},
	}
	for _, tt := range tests {
		if got := tt.curve.Y(tt.x); got != tt.want {
			t.Errorf("%+v.Y(%v) = %v, want %v", tt.curve, tt.x, got, tt.want)
		}
	}
}

func TestCurvePoints(t *testing.T) {
	pts := Curve{A: 1}.Points(-2, 2, 4)
	if len(pts) != 5 {
		t.Fatalf("len = %d, want 5", len(pts))
	}
	if pts[0] != (Point{X: -2, Y: 4}) || pts[2] != (Point{X: 0, Y: 0}) {
		t.Errorf("points = %v", pts)
	}
}

func TestDrawFlatCurve(t *testing.T) {
	c := NewCanvas(20, 10)
	p := NewPlotter(DefaultWorld, c)
	p.DrawCurve(Curve{A: 0, H: 400, K: 300}, '*', ColorFar)

	if got := c.Row(5); got != strings.Repeat("*", 20) {
		t.Errorf("Row(5) = %q, want a full line", got)
	}
}

func TestDrawSteepCurveIsConnected(t *testing.T) {
	c := NewCanvas(40, 20)
	p := NewPlotter(DefaultWorld, c)
	curve := Curve{A: 0.02, H: 400, K: 300}
	p.DrawCurve(curve, '*', ColorClose)

	// y grows downward: every row from the vertex to the bottom edge is crossed.
	for y := 10; y < 20; y++ {
		if !strings.ContainsRune(c.Row(y), '*') {
			t.Errorf("row %d has no curve cell", y)
		}
	}

	p.DrawVertex(curve, 'o', ColorVertex)
	if got := c.Get(20, 10); got.Rune != 'o' {
		t.Errorf("vertex cell = %q, want 'o'", got.Rune)
	}
}
