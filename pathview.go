package sceneview

import (
	"slices"

	"github.com/gogpu/gg"
)

// pathShape is a ShapeView outlined by a gg path.
type pathShape struct {
	ShapeView
	path *gg.Path
}

func newPathShape() pathShape {
	return pathShape{ShapeView: newShapeView(), path: gg.NewPath()}
}

// Path returns a copy of the outline.
func (p *pathShape) Path() *gg.Path { return p.path.Clone() }

// Points returns the outline as wire points.
func (p *pathShape) Points() SimplePath { return simplePathOf(p.path) }

// Move implements View.
func (p *pathShape) Move(dx, dy int) {
	p.path = translatePath(p.path, dx, dy)
}

// Intersects tests the flattened outline segments against r.
func (p *pathShape) Intersects(r Rect) bool {
	return PathIntersects(p.path, r)
}

func (p *pathShape) equalPath(o *pathShape) bool {
	if !p.equalShape(&o.ShapeView) {
		return false
	}
	a, b := simplePathOf(p.path), simplePathOf(o.path)
	return a.Equal(b)
}

func (p *pathShape) encodePath(obj Object) {
	sp := simplePathOf(p.path)
	obj["xpoints"] = slices.Clone(sp.X)
	obj["ypoints"] = slices.Clone(sp.Y)
	obj["pointtypes"] = slices.Clone(sp.Types)
	p.encodeStyle(obj)
}

// decodePath reads xpoints, ypoints and pointtypes; missing types are
// straight segments.
func (p *pathShape) decodePath(f Fields, closed bool) {
	p.decodeStyle(f)
	var xs, ys, types []int
	if !f.Ints("xpoints", &xs) || !f.Ints("ypoints", &ys) {
		return
	}
	if !f.Ints("pointtypes", &types) || len(types) < len(xs) {
		types = nil
	}
	p.path = NewSimplePath(xs, ys, types).GGPath(closed)
}

// PathView is an open curve built from line, quadratic and cubic segments.
type PathView struct {
	pathShape
}

// NewPathView returns a view of path stroked with pen.
func NewPathView(pen *Pen, path *gg.Path) *PathView {
	v := &PathView{pathShape: newPathShape()}
	v.pen = pen
	if path != nil {
		v.path = path.Clone()
	}
	return v
}

// NewPathViewPoints returns a view of the curve through sp.
func NewPathViewPoints(pen *Pen, sp SimplePath) *PathView {
	return NewPathView(pen, sp.GGPath(false))
}

// Class implements View.
func (p *PathView) Class() string { return classPath }

// Bounds returns the path box; a zero width or height counts as 1.
func (p *PathView) Bounds() Rect {
	r := pathBounds(p.path)
	if r.Width == 0 {
		r.Width = 1
	}
	if r.Height == 0 {
		r.Height = 1
	}
	return r
}

// MiddlePoint returns the middle of the flattened path.
func (p *PathView) MiddlePoint() Point {
	return PathMiddle(p.path)
}

// Paint implements View.
func (p *PathView) Paint(c Canvas) {
	p.paintShape(c, classPath, pathBounds(p.path), func() { replayPath(c, p.path) })
}

// Equal implements View.
func (p *PathView) Equal(other View) bool {
	o, ok := other.(*PathView)
	return ok && p.equalPath(&o.pathShape)
}

// EncodeJSON implements View.
func (p *PathView) EncodeJSON(*Codec) Object {
	obj := Object{}
	p.encodePath(obj)
	return obj
}

// DecodeJSON implements View.
func (p *PathView) DecodeJSON(_ *Codec, f Fields) {
	p.decodePath(f, false)
}

// Figure is a closed, filled outline built from points and point types.
type Figure struct {
	pathShape
}

// NewFigure returns the closed figure through the given points. types uses
// the SimplePath point types and may be nil.
func NewFigure(pen *Pen, brush *Brush, xs, ys, types []int) *Figure {
	f := &Figure{pathShape: newPathShape()}
	f.pen, f.brush = pen, brush
	if len(xs) > 0 {
		f.path = NewSimplePath(xs, ys, types).GGPath(true)
	}
	return f
}

// Class implements View.
func (f *Figure) Class() string { return classFigure }

// Bounds implements View.
func (f *Figure) Bounds() Rect { return pathBounds(f.path) }

// Paint implements View.
func (f *Figure) Paint(c Canvas) {
	f.paintShape(c, classFigure, f.Bounds(), func() { replayPath(c, f.path) })
}

// Equal implements View.
func (f *Figure) Equal(other View) bool {
	o, ok := other.(*Figure)
	return ok && f.equalPath(&o.pathShape)
}

// EncodeJSON implements View.
func (f *Figure) EncodeJSON(*Codec) Object {
	obj := Object{}
	f.encodePath(obj)
	return obj
}

// DecodeJSON implements View. The last wire point already closes the
// outline.
func (f *Figure) DecodeJSON(_ *Codec, fs Fields) {
	f.decodePath(fs, false)
}
