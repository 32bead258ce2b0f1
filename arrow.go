package sceneview

import (
	"math"
	"slices"
)

// Tip kinds understood by NewTip.
const (
	TipNone     = 0
	TipArrow    = 1
	TipTriangle = 2
	TipSimple   = 3
	TipDiamond  = 4
)

// Tip is an arrow end decoration drawn pointing along +x with its point at
// the origin, before it is rotated and moved onto the arrow.
type Tip struct {
	View  View
	poly  *Polygon
	Width float64
}

func polygonTip(pen *Pen, brush *Brush, xs, ys []int, width float64) *Tip {
	p := NewPolygon(pen, brush, xs, ys)
	return &Tip{View: p, poly: p, Width: width}
}

// NewTip returns the standard tip of the given kind, or nil for TipNone and
// unknown kinds.
func NewTip(pen *Pen, brush *Brush, kind int) *Tip {
	const w1, w2, h = 10, 15, 5
	switch kind {
	case TipArrow:
		return NewArrowTip(pen, brush, w1, w2, h)
	case TipDiamond:
		return NewDiamondTip(pen, brush, w1, w2, h)
	case TipTriangle:
		return NewTriangleTip(pen, brush, w2, h)
	case TipSimple:
		return NewSimpleTip(pen, w2, h)
	}
	return nil
}

// NewArrowTip returns a notched arrow head w2 long, notched back to w1.
func NewArrowTip(pen *Pen, brush *Brush, w1, w2, h int) *Tip {
	return polygonTip(pen, brush, []int{-w1, -w2, 0, -w2}, []int{0, h, 0, -h}, float64(w2-w1))
}

// NewTriggerTip returns a trigger bar tip with 2 by 2 notches.
func NewTriggerTip(pen *Pen, brush *Brush, w, h int) *Tip {
	return NewTriggerTipSized(pen, brush, w, h, 2, 2)
}

// NewTriggerTipSized returns a trigger bar tip with w2 by h2 notches.
func NewTriggerTipSized(pen *Pen, brush *Brush, w, h, w2, h2 int) *Tip {
	return polygonTip(pen, brush,
		[]int{-w, -w, -w, -w + w2, -w + w2, 0, -w + w2, -w + w2, -w, -w},
		[]int{0, -h, 0, 0, -h + h2, 0, h - h2, 0, 0, h},
		float64(w))
}

// NewTriangleTip returns a solid triangle pointing forward.
func NewTriangleTip(pen *Pen, brush *Brush, w, h int) *Tip {
	return polygonTip(pen, brush, []int{-w, 0, -w}, []int{h, 0, -h}, float64(w))
}

// NewReverseTriangleTip returns a triangle pointing backward.
func NewReverseTriangleTip(pen *Pen, brush *Brush, w, h int) *Tip {
	return polygonTip(pen, brush, []int{-w, 0, 0}, []int{0, h, -h}, float64(w))
}

// NewSimpleTip returns an open two stroke head.
func NewSimpleTip(pen *Pen, w, h int) *Tip {
	p := NewPolyline(pen, []int{-w, 0, -w}, []int{h, 0, -h})
	width := 0.0
	if pen != nil {
		width = pen.width
	}
	return &Tip{View: p, poly: &p.Polygon, Width: width}
}

// NewDiamondTip returns a diamond between w2 and the arrow end.
func NewDiamondTip(pen *Pen, brush *Brush, w1, w2, h int) *Tip {
	return polygonTip(pen, brush, []int{-w2, -w1, 0, -w1}, []int{0, h, 0, -h}, float64(w2-w1))
}

// NewLineTip returns a cross bar w behind the end.
func NewLineTip(pen *Pen, brush *Brush, w, h int) *Tip {
	return polygonTip(pen, brush, []int{-w, -w}, []int{h, -h}, 0)
}

// NewEllipseTip returns a 16-gon circle of radius r touching the end.
func NewEllipseTip(pen *Pen, brush *Brush, r int) *Tip {
	const edges = 16
	xs := make([]int, edges)
	ys := make([]int, edges)
	for i := range edges {
		a := 2 * math.Pi * float64(i) / edges
		xs[i] = int(float64(r)*math.Cos(a)) - r
		ys[i] = int(float64(r) * math.Sin(a))
	}
	return polygonTip(pen, brush, xs, ys, float64(2*r))
}

// locate rotates the tip by alpha and moves its point to (x, y).
func (t *Tip) locate(alpha float64, x, y int) {
	rotate(t.poly.xs, t.poly.ys, alpha)
	t.poly.Move(x, y)
}

// rotate turns integer points about the origin, rounding the results.
func rotate(xs, ys []int, alpha float64) {
	for i := range xs {
		x, y := float64(xs[i]), float64(ys[i])
		l := math.Hypot(x, y)
		if l == 0 {
			continue
		}
		b := math.Asin(y / l)
		if x < 0 {
			b = math.Pi - b
		}
		b += alpha
		xs[i] = int(math.Round(l * math.Cos(b)))
		ys[i] = int(math.Round(l * math.Sin(b)))
	}
}

// direction returns the angle of the vector from a to b; coincident points
// give 0.
func direction(a, b Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0
	}
	alpha := math.Asin(dy / l)
	if dx < 0 {
		alpha = math.Pi - alpha
	}
	return alpha
}

// Arrow is a line or curve with optional tips at both ends. The control
// points of a curved arrow take part in hit-testing and raise its selection
// priority.
type Arrow struct {
	Composite
	path     SimplePath
	pathView *PathView
}

func newEmptyArrow() *Arrow {
	return &Arrow{Composite: Composite{Base: newBase()}}
}

// NewArrow returns a straight arrow from a to b with tips of the given
// kinds.
func NewArrow(pen *Pen, brush *Brush, a, b Point, startKind, endKind int) *Arrow {
	return NewArrowTips(pen, a, b, NewTip(pen, brush, startKind), NewTip(pen, brush, endKind))
}

// NewArrowTips returns a straight arrow with the given tips; either may be
// nil.
func NewArrowTips(pen *Pen, a, b Point, start, end *Tip) *Arrow {
	v := newEmptyArrow()
	alpha := direction(a, b)
	v.Add(NewLine(pen, a, b))
	if start != nil {
		start.locate(alpha+math.Pi, a.X, a.Y)
		v.Add(start.View)
	}
	if end != nil {
		end.locate(alpha, b.X, b.Y)
		v.Add(end.View)
	}
	v.path = SegmentPath(a, b)
	return v
}

// NewPathArrow returns an arrow along sp with tips of the given kinds.
func NewPathArrow(pen *Pen, brush *Brush, sp SimplePath, startKind, endKind int) *Arrow {
	return NewPathArrowTips(pen, sp, NewTip(pen, brush, startKind), NewTip(pen, brush, endKind))
}

// NewPathArrowTips returns an arrow along sp. Paths with fewer than two
// points produce an empty arrow.
func NewPathArrowTips(pen *Pen, sp SimplePath, start, end *Tip) *Arrow {
	v := newEmptyArrow()
	v.path = sp.Clone()
	n := sp.Len()
	if n < 2 {
		return v
	}
	v.pathView = NewPathViewPoints(pen, sp)
	v.Add(v.pathView)
	if start != nil {
		start.locate(direction(sp.At(0), sp.At(1))+math.Pi, sp.X[0], sp.Y[0])
		v.Add(start.View)
	}
	if end != nil {
		end.locate(direction(sp.At(n-2), sp.At(n-1)), sp.X[n-1], sp.Y[n-1])
		v.Add(end.View)
	}
	return v
}

// Class implements View.
func (a *Arrow) Class() string { return classArrow }

// Path returns a copy of the control points.
func (a *Arrow) Path() SimplePath { return a.path.Clone() }

// PathView returns the curve child, nil for straight arrows.
func (a *Arrow) PathView() *PathView { return a.pathView }

// Move moves the children and the control points.
func (a *Arrow) Move(dx, dy int) {
	a.Composite.Move(dx, dy)
	a.path.Translate(dx, dy)
}

// Intersects tests the curve, or the children of a straight arrow, then the
// interior control points.
func (a *Arrow) Intersects(r Rect) bool {
	if a.pathView != nil {
		if a.pathView.Intersects(r) {
			return true
		}
	} else if a.Composite.Intersects(r) {
		return true
	}
	return a.controlPointIn(r)
}

func (a *Arrow) controlPointIn(r Rect) bool {
	n := a.path.Len()
	for i := 1; i < n-1; i++ {
		if r.ContainsPoint(a.path.X[i], a.path.Y[i]) {
			return true
		}
	}
	return false
}

// SelectionPriority is 1 when an interior control point lies in r.
func (a *Arrow) SelectionPriority(r Rect) int {
	if a.controlPointIn(r) {
		return 1
	}
	return 0
}

// Equal adds the control points to the composite comparison.
func (a *Arrow) Equal(other View) bool {
	o, ok := other.(*Arrow)
	return ok && a.equalComposite(&o.Composite) && a.path.Equal(o.path)
}

// EncodeJSON writes the children and the control points.
func (a *Arrow) EncodeJSON(codec *Codec) Object {
	obj := a.Composite.EncodeJSON(codec)
	obj["path"] = Object{
		"xpoints":    slices.Clone(a.path.X),
		"ypoints":    slices.Clone(a.path.Y),
		"pointtypes": slices.Clone(a.path.Types),
	}
	return obj
}

// DecodeJSON restores the children, the control points and the curve child.
func (a *Arrow) DecodeJSON(codec *Codec, f Fields) {
	a.Composite.DecodeJSON(codec, f)
	if sub, ok := f.Object("path"); ok {
		var xs, ys, types []int
		if sub.Ints("xpoints", &xs) && sub.Ints("ypoints", &ys) {
			if !sub.Ints("pointtypes", &types) || len(types) < len(xs) {
				types = nil
			}
			a.path = NewSimplePath(xs, ys, types)
		}
	}
	for _, v := range a.children {
		if pv, ok := v.(*PathView); ok {
			a.pathView = pv
			break
		}
	}
}
