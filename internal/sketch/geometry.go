package sketch

import "math"

// Rect is an axis-aligned box in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) { return r.X + r.W/2, r.Y + r.H/2 }

// Inset shrinks the rectangle by d on every side. Negative d grows it.
func (r Rect) Inset(d float64) Rect {
	w := math.Max(0, r.W-2*d)
	h := math.Max(0, r.H-2*d)
	return Rect{X: r.X + d, Y: r.Y + d, W: w, H: h}
}

// ContainsRect reports whether o lies entirely inside r, allowing for
// floating point error at the edges.
func (r Rect) ContainsRect(o Rect) bool {
	const eps = 1e-6
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.Right() <= r.Right()+eps && o.Bottom() <= r.Bottom()+eps
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Shape selects the hit test applied to a Region.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
	ShapeDiamond
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeDiamond:
		return "diamond"
	default:
		return "unknown"
	}
}

// Region is a hit-testable area. Circles use the smaller half-extent of the
// bounding box as radius.
type Region struct {
	Shape Shape
	Rect
}

// RectRegion builds a rectangular region.
func RectRegion(x, y, w, h float64) Region {
	return Region{Shape: ShapeRect, Rect: Rect{X: x, Y: y, W: w, H: h}}
}

// CircleRegion builds a circular region centred at (cx, cy).
func CircleRegion(cx, cy, r float64) Region {
	return Region{Shape: ShapeCircle, Rect: Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r}}
}

// DiamondRegion builds a diamond inscribed in the given box.
func DiamondRegion(x, y, w, h float64) Region {
	return Region{Shape: ShapeDiamond, Rect: Rect{X: x, Y: y, W: w, H: h}}
}

// Radius is the circle radius for ShapeCircle regions.
func (g Region) Radius() float64 {
	return math.Min(g.W, g.H) / 2
}

// Contains reports whether (x, y) hits the region, widened by pad on every
// bound.
func (g Region) Contains(x, y, pad float64) bool {
	switch g.Shape {
	case ShapeCircle:
		cx, cy := g.Center()
		return math.Hypot(x-cx, y-cy) <= g.Radius()+pad
	case ShapeDiamond:
		cx, cy := g.Center()
		hw := g.W/2 + pad
		hh := g.H/2 + pad
		if hw <= 0 || hh <= 0 {
			return false
		}
		return math.Abs(x-cx)/hw+math.Abs(y-cy)/hh <= 1
	default:
		return x >= g.X-pad && x <= g.Right()+pad &&
			y >= g.Y-pad && y <= g.Bottom()+pad
	}
}
