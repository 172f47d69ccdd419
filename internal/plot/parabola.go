package plot

import "math"

// World is the coordinate space of the puzzle: the origin is the top-left
// corner and y grows downward.
type World struct {
	W, H float64
}

// DefaultWorld is the 800x600 puzzle space.
var DefaultWorld = World{W: 800, H: 600}

// Curve is a parabola in vertex form.
type Curve struct {
	A, H, K float64
}

// Y evaluates y = a(x-h)^2 + k.
func (c Curve) Y(x float64) float64 {
	d := x - c.H
	return c.A*d*d + c.K
}

// Point is a world-space point.
type Point struct {
	X, Y float64
}

// Points samples steps+1 points of c between startX and endX.
func (c Curve) Points(startX, endX float64, steps int) []Point {
	if steps <= 0 {
		return []Point{{X: startX, Y: c.Y(startX)}}
	}
	points := make([]Point, 0, steps+1)
	stepSize := (endX - startX) / float64(steps)
	for i := 0; i <= steps; i++ {
		x := startX + float64(i)*stepSize
		points = append(points, Point{X: x, Y: c.Y(x)})
	}
	return points
}

// Plotter maps world coordinates onto a canvas.
type Plotter struct {
	world  World
	canvas *Canvas
}

// NewPlotter creates a plotter drawing world onto canvas.
func NewPlotter(world World, canvas *Canvas) *Plotter {
	return &Plotter{world: world, canvas: canvas}
}

// Canvas returns the target canvas.
func (p *Plotter) Canvas() *Canvas {
	return p.canvas
}

// Cell converts a world point to canvas coordinates.
func (p *Plotter) Cell(pt Point) (int, int) {
	w, h := p.canvas.Width(), p.canvas.Height()
	if w == 0 || h == 0 || p.world.W <= 0 || p.world.H <= 0 {
		return -1, -1
	}
	cx := int(math.Floor(pt.X / p.world.W * float64(w)))
	cy := int(math.Floor(pt.Y / p.world.H * float64(h)))
	return cx, cy
}

// DrawGrid draws the baseline and the vertical centre line.
func (p *Plotter) DrawGrid() {
	c := p.canvas
	mx, my := p.Cell(Point{X: p.world.W / 2, Y: p.world.H / 2})
	c.DrawHLine(0, my, c.Width(), '·', ColorGrid)
	c.DrawVLine(mx, 0, c.Height(), '·', ColorGrid)
	c.Set(mx, my, '+', ColorGrid)
}

// DrawCurve samples the curve at every column and joins neighbouring
// samples vertically so steep branches stay connected.
func (p *Plotter) DrawCurve(curve Curve, r rune, color Color) {
	c := p.canvas
	w, h := c.Width(), c.Height()
	if w == 0 || h == 0 {
		return
	}

	prevY, havePrev := 0, false
	for col := 0; col < w; col++ {
		x := (float64(col) + 0.5) / float64(w) * p.world.W
		y := curve.Y(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			havePrev = false
			continue
		}
		// Clamp far outside values so joins stay bounded.
		y = math.Max(-p.world.H, math.Min(2*p.world.H, y))
		_, cy := p.Cell(Point{X: x, Y: y})

		if havePrev && abs(cy-prevY) > 1 {
			lo, hi := min(cy, prevY), max(cy, prevY)
			// Split the join between this column and the previous one.
			mid := (lo + hi) / 2
			for yy := lo + 1; yy < hi; yy++ {
				if (yy <= mid) == (prevY < cy) {
					c.Set(col-1, yy, r, color)
				} else {
					c.Set(col, yy, r, color)
				}
			}
		}
		c.Set(col, cy, r, color)
		prevY, havePrev = cy, true
	}
}

// DrawVertex marks the vertex (h, k).
func (p *Plotter) DrawVertex(curve Curve, r rune, color Color) {
	cx, cy := p.Cell(Point{X: curve.H, Y: curve.K})
	p.canvas.Set(cx, cy, r, color)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
