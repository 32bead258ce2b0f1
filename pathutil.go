package sceneview

import (
	"math"

	"github.com/gogpu/gg"
)

// Point types of a SimplePath.
const (
	PointLine  = 0
	PointQuad  = 1
	PointCubic = 2
)

// flatness is the flattening tolerance for curve hit-testing.
const flatness = 5.0

// SimplePath is a flat list of integer points with a parallel point type
// per point: PointLine, or a control point of a quadratic or cubic curve.
type SimplePath struct {
	X, Y  []int
	Types []int
}

// NewSimplePath returns a path through the given points. types may be nil
// for a polyline; otherwise it must be as long as xs.
func NewSimplePath(xs, ys, types []int) SimplePath {
	if types == nil {
		types = make([]int, len(xs))
	}
	return SimplePath{X: xs, Y: ys, Types: types}
}

// SegmentPath returns the two point path from a to b.
func SegmentPath(a, b Point) SimplePath {
	return NewSimplePath([]int{a.X, b.X}, []int{a.Y, b.Y}, nil)
}

// Len returns the number of points.
func (p SimplePath) Len() int {
	return min(len(p.X), len(p.Y))
}

// At returns point i.
func (p SimplePath) At(i int) Point {
	return Point{X: p.X[i], Y: p.Y[i]}
}

func (p SimplePath) typeAt(i int) int {
	if i < len(p.Types) {
		return p.Types[i]
	}
	return PointLine
}

// AddPoint appends a point of the given type.
func (p *SimplePath) AddPoint(pt Point, typ int) {
	p.X = append(p.X, pt.X)
	p.Y = append(p.Y, pt.Y)
	for len(p.Types) < len(p.X)-1 {
		p.Types = append(p.Types, PointLine)
	}
	p.Types = append(p.Types, typ)
}

// Translate moves every point by (dx, dy).
func (p SimplePath) Translate(dx, dy int) {
	for i := range p.X {
		p.X[i] += dx
	}
	for i := range p.Y {
		p.Y[i] += dy
	}
}

// Clone returns a deep copy.
func (p SimplePath) Clone() SimplePath {
	return SimplePath{
		X:     append([]int(nil), p.X...),
		Y:     append([]int(nil), p.Y...),
		Types: append([]int(nil), p.Types...),
	}
}

// Equal compares points and types.
func (p SimplePath) Equal(o SimplePath) bool {
	n := p.Len()
	if n != o.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if p.X[i] != o.X[i] || p.Y[i] != o.Y[i] || p.typeAt(i) != o.typeAt(i) {
			return false
		}
	}
	return true
}

// Bounds returns the rectangle enclosing all points, control points
// included.
func (p SimplePath) Bounds() Rect {
	n := p.Len()
	if n == 0 {
		return Rect{}
	}
	x0, y0, x1, y1 := p.X[0], p.Y[0], p.X[0], p.Y[0]
	for i := 1; i < n; i++ {
		x0, x1 = min(x0, p.X[i]), max(x1, p.X[i])
		y0, y1 = min(y0, p.Y[i]), max(y1, p.Y[i])
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// GGPath builds the curve path. A type 1 point starts a quadratic and a
// type 2 point a cubic when enough points follow; anything else is a line.
func (p SimplePath) GGPath(closed bool) *gg.Path {
	path := gg.NewPath()
	n := p.Len()
	if n == 0 {
		return path
	}
	path.MoveTo(float64(p.X[0]), float64(p.Y[0]))
	for i := 1; i < n; i++ {
		switch {
		case p.typeAt(i) == PointQuad && i < n-1:
			path.QuadraticTo(float64(p.X[i]), float64(p.Y[i]), float64(p.X[i+1]), float64(p.Y[i+1]))
			i++
		case p.typeAt(i) == PointCubic && i < n-2:
			path.CubicTo(float64(p.X[i]), float64(p.Y[i]),
				float64(p.X[i+1]), float64(p.Y[i+1]),
				float64(p.X[i+2]), float64(p.Y[i+2]))
			i += 2
		default:
			path.LineTo(float64(p.X[i]), float64(p.Y[i]))
		}
	}
	if closed {
		path.LineTo(float64(p.X[0]), float64(p.Y[0]))
	}
	return path
}

// simplePathOf converts a gg path back to wire points. Close repeats the
// first point as a line point.
func simplePathOf(path *gg.Path) SimplePath {
	var sp SimplePath
	add := func(pt gg.Point, typ int) {
		sp.X = append(sp.X, int(pt.X))
		sp.Y = append(sp.Y, int(pt.Y))
		sp.Types = append(sp.Types, typ)
	}
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			add(e.Point, PointLine)
		case gg.LineTo:
			add(e.Point, PointLine)
		case gg.QuadTo:
			add(e.Control, PointQuad)
			add(e.Point, PointQuad)
		case gg.CubicTo:
			add(e.Control1, PointCubic)
			add(e.Control2, PointCubic)
			add(e.Point, PointCubic)
		case gg.Close:
			if len(sp.X) > 0 {
				sp.X = append(sp.X, sp.X[0])
				sp.Y = append(sp.Y, sp.Y[0])
				sp.Types = append(sp.Types, PointLine)
			}
		}
	}
	return sp
}

// translatePath returns path moved by (dx, dy).
func translatePath(path *gg.Path, dx, dy int) *gg.Path {
	return path.Transform(gg.Translate(float64(dx), float64(dy)))
}

// replayPath feeds the elements of path to c.
func replayPath(c Canvas, path *gg.Path) {
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			c.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			c.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			c.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			c.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			c.ClosePath()
		}
	}
}

// pathBounds returns the integer bounds of path.
func pathBounds(path *gg.Path) Rect {
	if path == nil || len(path.Elements()) == 0 {
		return Rect{}
	}
	bb := path.BoundingBox()
	return boundsOf(bb.Min.X, bb.Min.Y, bb.Max.X, bb.Max.Y)
}

// flattenPath returns the flattened vertices of path with integer
// coordinates, one slice per subpath.
func flattenPath(path *gg.Path, tolerance float64) [][]Point {
	var (
		out      [][]Point
		cur      []Point
		at       gg.Point
		start    gg.Point
		hasStart bool
	)
	emit := func(pt gg.Point) {
		cur = append(cur, Point{X: int(pt.X), Y: int(pt.Y)})
	}
	curve := func(build func(sub *gg.Path)) {
		sub := gg.NewPath()
		sub.MoveTo(at.X, at.Y)
		build(sub)
		pts := sub.Flatten(tolerance)
		if len(pts) < 2 {
			return
		}
		for _, pt := range pts[1:] {
			emit(pt)
		}
	}
	for _, el := range path.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			emit(e.Point)
			at, start, hasStart = e.Point, e.Point, true
		case gg.LineTo:
			emit(e.Point)
			at = e.Point
		case gg.QuadTo:
			curve(func(sub *gg.Path) { sub.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y) })
			at = e.Point
		case gg.CubicTo:
			curve(func(sub *gg.Path) {
				sub.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			})
			at = e.Point
		case gg.Close:
			if hasStart {
				emit(start)
				at = start
			}
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// PathIntersects reports whether any flattened segment of path crosses an
// edge of r or ends inside it.
func PathIntersects(path *gg.Path, r Rect) bool {
	for _, poly := range flattenPath(path, flatness) {
		for i := 1; i < len(poly); i++ {
			if segmentMeets(poly[i-1].X, poly[i-1].Y, poly[i].X, poly[i].Y, r) {
				return true
			}
		}
	}
	return false
}

// PathMiddle returns the middle vertex of the flattened path, or the average
// of the two middle vertices when their count is even.
func PathMiddle(path *gg.Path) Point {
	var pts []Point
	for _, poly := range flattenPath(path, flatness) {
		pts = append(pts, poly...)
	}
	n := len(pts)
	switch {
	case n == 0:
		return Point{}
	case n%2 == 0:
		a, b := pts[n/2-1], pts[n/2]
		return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	}
	return pts[n/2]
}

// LineIntersects reports whether the segment (x1,y1)-(x2,y2) crosses one of
// the four edges of r. Intersections use integer arithmetic.
func LineIntersects(x1, y1, x2, y2 int, r Rect) bool {
	return horizontalLineIntersect(x1, y1, x2, y2, r.X, r.Right(), r.Y) ||
		horizontalLineIntersect(x1, y1, x2, y2, r.X, r.Right(), r.Bottom()) ||
		verticalLineIntersect(x1, y1, x2, y2, r.X, r.Y, r.Bottom()) ||
		verticalLineIntersect(x1, y1, x2, y2, r.Right(), r.Y, r.Bottom())
}

func horizontalLineIntersect(x1, y1, x2, y2, lineX1, lineX2, lineY int) bool {
	if lineY < min(y1, y2) || lineY > max(y1, y2) || y1 == y2 {
		return false
	}
	x := x1 + (x2-x1)*(lineY-y1)/(y2-y1)
	return x >= lineX1 && x <= lineX2
}

func verticalLineIntersect(x1, y1, x2, y2, lineX, lineY1, lineY2 int) bool {
	if lineX < min(x1, x2) || lineX > max(x1, x2) || x1 == x2 {
		return false
	}
	y := y1 + (y2-y1)*(lineX-x1)/(x2-x1)
	return y >= lineY1 && y <= lineY2
}

// NearestSegment returns the index i of the segment (i, i+1) of p closest
// to pt by the ratio of summed squared end distances to squared segment
// length, or -1 for paths with fewer than two points.
func NearestSegment(p SimplePath, pt Point) int {
	best := math.MaxFloat64
	seg := -1
	for i := 0; i < p.Len()-1; i++ {
		d := sq(p.X[i]-pt.X) + sq(p.Y[i]-pt.Y) + sq(p.X[i+1]-pt.X) + sq(p.Y[i+1]-pt.Y)
		l := sq(p.X[i+1]-p.X[i]) + sq(p.Y[i+1]-p.Y[i])
		if l == 0 {
			continue
		}
		if dist := d / l; dist < best {
			best, seg = dist, i
		}
	}
	return seg
}

func sq(v int) float64 {
	f := float64(v)
	return f * f
}

func floor(v float64) int { return int(math.Floor(v)) }
func ceil(v float64) int  { return int(math.Ceil(v)) }
