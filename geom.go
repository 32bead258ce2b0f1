package sceneview

import "fmt"

// Point is an integer position in scene coordinates.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an integer axis-aligned rectangle anchored at its top-left corner.
//
// A rectangle with a zero width or height is still a position in the scene:
// Union keeps it, only negative sizes are treated as "no rectangle".
type Rect struct {
	X, Y          int
	Width, Height int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Right returns the x coordinate just past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Center returns the integer centre of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns width*height as an int64 so large scenes do not overflow.
func (r Rect) Area() int64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return int64(r.Width) * int64(r.Height)
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if r.Width < 0 || r.Height < 0 {
		return s
	}
	if s.Width < 0 || s.Height < 0 {
		return r
	}
	x0 := min(r.X, s.X)
	y0 := min(r.Y, s.Y)
	x1 := max(r.Right(), s.Right())
	y1 := max(r.Bottom(), s.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether r and s share interior area.
func (r Rect) Intersects(s Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || s.Width <= 0 || s.Height <= 0 {
		return false
	}
	return s.X < r.Right() && s.Right() > r.X && s.Y < r.Bottom() && s.Bottom() > r.Y
}

// Intersect returns the overlapping part of r and s, or an empty rectangle.
func (r Rect) Intersect(s Rect) Rect {
	x0 := max(r.X, s.X)
	y0 := max(r.Y, s.Y)
	x1 := min(r.Right(), s.Right())
	y1 := min(r.Bottom(), s.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ContainsPoint reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) ContainsPoint(x, y int) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.X && y >= r.Y && x < r.Right() && y < r.Bottom()
}

// Contains reports whether s lies completely inside r.
func (r Rect) Contains(s Rect) bool {
	if r.Width < 0 || r.Height < 0 || s.Width < 0 || s.Height < 0 {
		return false
	}
	return s.X >= r.X && s.Y >= r.Y && s.Right() <= r.Right() && s.Bottom() <= r.Bottom()
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Grow returns r expanded by h on the left and right and v on the top and
// bottom.
func (r Rect) Grow(h, v int) Rect {
	return Rect{X: r.X - h, Y: r.Y - v, Width: r.Width + 2*h, Height: r.Height + 2*v}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.Width, r.Height)
}

// boundsOf returns the integer rectangle enclosing the float extent
// [x0,x1]x[y0,y1], flooring the origin and ceiling the far edges.
func boundsOf(x0, y0, x1, y1 float64) Rect {
	ix0 := floor(x0)
	iy0 := floor(y0)
	ix1 := ceil(x1)
	iy1 := ceil(y1)
	return Rect{X: ix0, Y: iy0, Width: ix1 - ix0, Height: iy1 - iy0}
}
