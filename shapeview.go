package sceneview

import (
	"math"
	"slices"
)

// kappa is the cubic Bézier control distance for a quarter ellipse.
const kappa = 0.5522847498

// ShapeView is the common part of views drawn from a geometric outline with
// an optional pen and brush.
type ShapeView struct {
	Base
	pen   *Pen
	brush *Brush
}

func newShapeView() ShapeView {
	return ShapeView{Base: newBase()}
}

// Pen returns the stroke style, nil when the outline is not drawn.
func (s *ShapeView) Pen() *Pen { return s.pen }

// SetPen replaces the stroke style.
func (s *ShapeView) SetPen(p *Pen) { s.pen = p }

// Brush returns the fill style, nil when the shape is not filled.
func (s *ShapeView) Brush() *Brush { return s.brush }

// SetBrush replaces the fill style.
func (s *ShapeView) SetBrush(b *Brush) { s.brush = b }

// SetToScale replaces the scale and rescales the pen width by the change in
// sx, so the stroke follows the zoom.
func (s *ShapeView) SetToScale(sx, sy float64) {
	if s.pen != nil && s.sx != 0 {
		s.pen.width *= sx / s.sx
	}
	s.setScale(sx, sy)
}

// Scale multiplies the current scale.
func (s *ShapeView) Scale(sx, sy float64) {
	s.SetToScale(s.sx*sx, s.sy*sy)
}

// paintShape fills then strokes the outline produced by build.
func (s *ShapeView) paintShape(c Canvas, class string, bounds Rect, build func()) {
	if !s.IsVisible() {
		return
	}
	if s.brush != nil {
		fillShape(c, class, s.brush, bounds, build)
	}
	if s.pen != nil && s.pen.width > 0 {
		strokeShape(c, class, s.pen, build)
	}
}

func (s *ShapeView) encodeStyle(obj Object) {
	if s.pen != nil {
		obj["pen"] = s.pen.EncodeJSON()
	}
	if s.brush != nil {
		obj["brush"] = s.brush.EncodeJSON()
	}
}

func (s *ShapeView) decodeStyle(f Fields) {
	pen, brush := decodeStyle(f)
	if pen != nil {
		s.pen = pen
	}
	if brush != nil {
		s.brush = brush
	}
}

func (s *ShapeView) equalShape(o *ShapeView) bool {
	return s.equalBase(&o.Base) && s.pen.Equal(o.pen) && s.brush.Equal(o.brush)
}

// Line is a straight segment.
type Line struct {
	ShapeView
	x1, y1, x2, y2 float64
}

// NewLine returns a segment from a to b stroked with pen.
func NewLine(pen *Pen, a, b Point) *Line {
	return NewLineF(pen, float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}

// NewLineF returns a segment with fractional end points.
func NewLineF(pen *Pen, x1, y1, x2, y2 float64) *Line {
	l := &Line{ShapeView: newShapeView(), x1: x1, y1: y1, x2: x2, y2: y2}
	l.pen = pen
	return l
}

// Class implements View.
func (l *Line) Class() string { return classLine }

// Ends returns the end points.
func (l *Line) Ends() (x1, y1, x2, y2 float64) { return l.x1, l.y1, l.x2, l.y2 }

// Bounds grows the segment box by half the pen width, rounded up.
func (l *Line) Bounds() Rect {
	r := boundsOf(math.Min(l.x1, l.x2), math.Min(l.y1, l.y2), math.Max(l.x1, l.x2), math.Max(l.y1, l.y2))
	if l.pen != nil {
		g := roundHalf(l.pen.width)
		r = r.Grow(g, g)
	}
	return r
}

// Move implements View.
func (l *Line) Move(dx, dy int) {
	l.x1 += float64(dx)
	l.x2 += float64(dx)
	l.y1 += float64(dy)
	l.y2 += float64(dy)
}

// Intersects tests the segment, not its box.
func (l *Line) Intersects(r Rect) bool {
	return segmentMeets(int(l.x1), int(l.y1), int(l.x2), int(l.y2), r)
}

// Paint strokes the segment; a line without pen is invisible.
func (l *Line) Paint(c Canvas) {
	if l.pen == nil || !l.IsVisible() {
		return
	}
	strokeShape(c, classLine, l.pen, func() {
		c.MoveTo(l.x1, l.y1)
		c.LineTo(l.x2, l.y2)
	})
}

// Equal implements View.
func (l *Line) Equal(other View) bool {
	o, ok := other.(*Line)
	if !ok {
		return false
	}
	return l.equalBase(&o.Base) && l.pen.Equal(o.pen) &&
		l.x1 == o.x1 && l.y1 == o.y1 && l.x2 == o.x2 && l.y2 == o.y2
}

// EncodeJSON implements View.
func (l *Line) EncodeJSON(*Codec) Object {
	obj := Object{"x1": l.x1, "y1": l.y1, "x2": l.x2, "y2": l.y2}
	if l.pen != nil {
		obj["pen"] = l.pen.EncodeJSON()
	}
	return obj
}

// DecodeJSON implements View.
func (l *Line) DecodeJSON(_ *Codec, f Fields) {
	if sub, ok := f.Object("pen"); ok {
		l.pen = DecodePen(sub)
	}
	f.Float("x1", &l.x1)
	f.Float("y1", &l.y1)
	f.Float("x2", &l.x2)
	f.Float("y2", &l.y2)
}

// Box is an axis aligned rectangle, optionally with rounded corners.
type Box struct {
	ShapeView
	x, y, w, h float64
	arcW, arcH float64
	rounded    bool
}

// NewBox returns a rectangle. Negative sizes are normalized.
func NewBox(pen *Pen, brush *Brush, r Rect) *Box {
	return NewBoxF(pen, brush, float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
}

// NewBoxF is NewBox with fractional geometry.
func NewBoxF(pen *Pen, brush *Brush, x, y, w, h float64) *Box {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	b := &Box{ShapeView: newShapeView(), x: x, y: y, w: w, h: h}
	b.pen, b.brush = pen, brush
	return b
}

// NewRoundBox returns a rectangle whose corners are elliptic arcs of the
// given diameters.
func NewRoundBox(pen *Pen, brush *Brush, r Rect, arcW, arcH float64) *Box {
	b := NewBox(pen, brush, r)
	b.arcW, b.arcH, b.rounded = arcW, arcH, true
	return b
}

// Class implements View.
func (b *Box) Class() string { return classBox }

// Rect returns the unstroked rectangle.
func (b *Box) Rect() Rect { return boundsOf(b.x, b.y, b.x+b.w, b.y+b.h) }

// Arcs returns the corner diameters and whether the box is rounded.
func (b *Box) Arcs() (w, h float64, rounded bool) { return b.arcW, b.arcH, b.rounded }

// Bounds grows the rectangle by half the pen width, rounded down.
func (b *Box) Bounds() Rect {
	r := b.Rect()
	if hw := b.pen.halfWidth(); hw != 0 {
		r = r.Grow(hw, hw)
	}
	return r
}

// Move implements View.
func (b *Box) Move(dx, dy int) {
	b.x += float64(dx)
	b.y += float64(dy)
}

// Resize changes the size keeping the top-left corner.
func (b *Box) Resize(dw, dh int) {
	b.w += float64(dw)
	b.h += float64(dh)
}

// Intersects implements View.
func (b *Box) Intersects(r Rect) bool {
	return b.Rect().Intersects(r)
}

// Paint implements View.
func (b *Box) Paint(c Canvas) {
	b.paintShape(c, classBox, b.Rect(), func() {
		if b.rounded {
			roundRectPath(c, b.x, b.y, b.w, b.h, b.arcW/2, b.arcH/2)
		} else {
			rectPath(c, b.x, b.y, b.w, b.h)
		}
	})
}

// Equal implements View.
func (b *Box) Equal(other View) bool {
	o, ok := other.(*Box)
	if !ok {
		return false
	}
	return b.equalShape(&o.ShapeView) && b.Rect() == o.Rect() &&
		b.rounded == o.rounded && b.arcW == o.arcW && b.arcH == o.arcH
}

// EncodeJSON implements View.
func (b *Box) EncodeJSON(*Codec) Object {
	r := b.Rect()
	obj := Object{"x": r.X, "y": r.Y, "width": r.Width, "height": r.Height}
	if b.rounded {
		obj["arcWidth"] = b.arcW
		obj["arcHeight"] = b.arcH
	}
	b.encodeStyle(obj)
	return obj
}

// DecodeJSON implements View.
func (b *Box) DecodeJSON(_ *Codec, f Fields) {
	b.decodeStyle(f)
	var x, y, w, h int
	if f.Int("x", &x) && f.Int("y", &y) && f.Int("width", &w) && f.Int("height", &h) {
		b.x, b.y, b.w, b.h = float64(x), float64(y), float64(w), float64(h)
	}
	var aw, ah float64
	if f.Float("arcWidth", &aw) && f.Float("arcHeight", &ah) {
		b.arcW, b.arcH, b.rounded = aw, ah, true
	}
}

// Ellipse is an ellipse inscribed in a rectangle.
type Ellipse struct {
	ShapeView
	x, y, w, h float64
}

// NewEllipse returns the ellipse inscribed in the rectangle at (x, y).
func NewEllipse(pen *Pen, brush *Brush, x, y, w, h float64) *Ellipse {
	e := &Ellipse{ShapeView: newShapeView(), x: x, y: y, w: w, h: h}
	e.pen, e.brush = pen, brush
	return e
}

// Class implements View.
func (e *Ellipse) Class() string { return classEllipse }

// Bounds implements View.
func (e *Ellipse) Bounds() Rect { return boundsOf(e.x, e.y, e.x+e.w, e.y+e.h) }

// Move implements View.
func (e *Ellipse) Move(dx, dy int) {
	e.x += float64(dx)
	e.y += float64(dy)
}

// Intersects tests the ellipse interior against r.
func (e *Ellipse) Intersects(r Rect) bool {
	if e.w <= 0 || e.h <= 0 || r.IsEmpty() {
		return false
	}
	rx, ry := e.w/2, e.h/2
	cx, cy := e.x+rx, e.y+ry
	nx := math.Max(float64(r.X), math.Min(cx, float64(r.Right())))
	ny := math.Max(float64(r.Y), math.Min(cy, float64(r.Bottom())))
	dx, dy := (nx-cx)/rx, (ny-cy)/ry
	return dx*dx+dy*dy < 1
}

// Paint implements View.
func (e *Ellipse) Paint(c Canvas) {
	e.paintShape(c, classEllipse, e.Bounds(), func() {
		ellipsePath(c, e.x+e.w/2, e.y+e.h/2, e.w/2, e.h/2)
	})
}

// Equal implements View.
func (e *Ellipse) Equal(other View) bool {
	o, ok := other.(*Ellipse)
	return ok && e.equalShape(&o.ShapeView) && e.Bounds() == o.Bounds()
}

// EncodeJSON writes the centre as x and y.
func (e *Ellipse) EncodeJSON(*Codec) Object {
	r := e.Bounds()
	obj := Object{"x": r.X + r.Width/2, "y": r.Y + r.Height/2, "width": r.Width, "height": r.Height}
	e.encodeStyle(obj)
	return obj
}

// DecodeJSON implements View.
func (e *Ellipse) DecodeJSON(_ *Codec, f Fields) {
	e.decodeStyle(f)
	var x, y, w, h int
	if f.Int("x", &x) && f.Int("y", &y) && f.Int("width", &w) && f.Int("height", &h) {
		e.x, e.y = float64(x-w/2), float64(y-h/2)
		e.w, e.h = float64(w), float64(h)
	}
}

// Polygon is a closed polygon with integer vertices.
type Polygon struct {
	ShapeView
	xs, ys []int
}

// NewPolygon returns a polygon through the given vertices.
func NewPolygon(pen *Pen, brush *Brush, xs, ys []int) *Polygon {
	p := &Polygon{ShapeView: newShapeView()}
	p.pen, p.brush = pen, brush
	p.setPoints(xs, ys)
	return p
}

// NewPolygonPoints returns a polygon through pts.
func NewPolygonPoints(pen *Pen, brush *Brush, pts []Point) *Polygon {
	p := NewPolygon(pen, brush, nil, nil)
	for _, pt := range pts {
		p.AddPoint(pt)
	}
	return p
}

func (p *Polygon) setPoints(xs, ys []int) {
	n := min(len(xs), len(ys))
	p.xs = slices.Clone(xs[:n])
	p.ys = slices.Clone(ys[:n])
}

// Class implements View.
func (p *Polygon) Class() string { return classPolygon }

// AddPoint appends a vertex.
func (p *Polygon) AddPoint(pt Point) {
	p.xs = append(p.xs, pt.X)
	p.ys = append(p.ys, pt.Y)
}

// Len returns the number of vertices.
func (p *Polygon) Len() int { return len(p.xs) }

// Point returns vertex i.
func (p *Polygon) Point(i int) Point { return Point{X: p.xs[i], Y: p.ys[i]} }

// Bounds implements View.
func (p *Polygon) Bounds() Rect {
	return SimplePath{X: p.xs, Y: p.ys}.Bounds()
}

// Move implements View.
func (p *Polygon) Move(dx, dy int) {
	SimplePath{X: p.xs, Y: p.ys}.Translate(dx, dy)
}

// Intersects tests the polygon area against r.
func (p *Polygon) Intersects(r Rect) bool {
	return polygonMeets(p.xs, p.ys, r)
}

func (p *Polygon) outline(c Canvas) {
	if len(p.xs) == 0 {
		return
	}
	c.MoveTo(float64(p.xs[0]), float64(p.ys[0]))
	for i := 1; i < len(p.xs); i++ {
		c.LineTo(float64(p.xs[i]), float64(p.ys[i]))
	}
	c.ClosePath()
}

// Paint implements View.
func (p *Polygon) Paint(c Canvas) {
	p.paintShape(c, classPolygon, p.Bounds(), func() { p.outline(c) })
}

func (p *Polygon) equalPoints(o *Polygon) bool {
	return slices.Equal(p.xs, o.xs) && slices.Equal(p.ys, o.ys)
}

// Equal implements View.
func (p *Polygon) Equal(other View) bool {
	o, ok := other.(*Polygon)
	return ok && p.equalShape(&o.ShapeView) && p.equalPoints(o)
}

// EncodeJSON implements View.
func (p *Polygon) EncodeJSON(*Codec) Object {
	obj := Object{"xpoints": slices.Clone(p.xs), "ypoints": slices.Clone(p.ys)}
	p.encodeStyle(obj)
	return obj
}

// DecodeJSON implements View.
func (p *Polygon) DecodeJSON(_ *Codec, f Fields) {
	p.decodeStyle(f)
	var xs, ys []int
	if f.Ints("xpoints", &xs) && f.Ints("ypoints", &ys) {
		p.setPoints(xs, ys)
	}
}

// Polyline is an open chain of segments drawn with a pen only.
type Polyline struct {
	Polygon
}

// NewPolyline returns a polyline through the given vertices.
func NewPolyline(pen *Pen, xs, ys []int) *Polyline {
	return &Polyline{Polygon: *NewPolygon(pen, nil, xs, ys)}
}

// Class implements View.
func (p *Polyline) Class() string { return classPolyline }

// Intersects tests each segment against r.
func (p *Polyline) Intersects(r Rect) bool {
	for i := 1; i < len(p.xs); i++ {
		if segmentMeets(p.xs[i-1], p.ys[i-1], p.xs[i], p.ys[i], r) {
			return true
		}
	}
	return false
}

// Paint strokes the segments with vertices multiplied by the scale.
func (p *Polyline) Paint(c Canvas) {
	if p.pen == nil || !p.IsVisible() || len(p.xs) < 2 {
		return
	}
	strokeShape(c, classPolyline, p.pen, func() {
		c.MoveTo(math.Round(float64(p.xs[0])*p.sx), math.Round(float64(p.ys[0])*p.sy))
		for i := 1; i < len(p.xs); i++ {
			c.LineTo(math.Round(float64(p.xs[i])*p.sx), math.Round(float64(p.ys[i])*p.sy))
		}
	})
}

// Equal implements View.
func (p *Polyline) Equal(other View) bool {
	o, ok := other.(*Polyline)
	return ok && p.equalShape(&o.ShapeView) && p.equalPoints(&o.Polygon)
}

// segmentMeets reports whether a segment crosses an edge of r or has an end
// inside it.
func segmentMeets(x1, y1, x2, y2 int, r Rect) bool {
	return r.ContainsPoint(x1, y1) || r.ContainsPoint(x2, y2) || LineIntersects(x1, y1, x2, y2, r)
}

// polygonMeets reports whether the even-odd interior of a polygon overlaps r.
func polygonMeets(xs, ys []int, r Rect) bool {
	n := min(len(xs), len(ys))
	if n == 0 || r.IsEmpty() {
		return false
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if segmentMeets(xs[i], ys[i], xs[j], ys[j], r) {
			return true
		}
	}
	c := r.Center()
	return polygonContains(xs, ys, float64(c.X), float64(c.Y))
}

func polygonContains(xs, ys []int, px, py float64) bool {
	in := false
	n := min(len(xs), len(ys))
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := float64(xs[i]), float64(ys[i])
		xj, yj := float64(xs[j]), float64(ys[j])
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

func rectPath(c Canvas, x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func roundRectPath(c Canvas, x, y, w, h, rx, ry float64) {
	rx = math.Min(math.Abs(rx), w/2)
	ry = math.Min(math.Abs(ry), h/2)
	if rx == 0 || ry == 0 {
		rectPath(c, x, y, w, h)
		return
	}
	kx, ky := rx*kappa, ry*kappa
	c.MoveTo(x+rx, y)
	c.LineTo(x+w-rx, y)
	c.CubicTo(x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry)
	c.LineTo(x+w, y+h-ry)
	c.CubicTo(x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h)
	c.LineTo(x+rx, y+h)
	c.CubicTo(x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry)
	c.LineTo(x, y+ry)
	c.CubicTo(x, y+ry-ky, x+rx-kx, y, x+rx, y)
	c.ClosePath()
}

func ellipsePath(c Canvas, cx, cy, rx, ry float64) {
	kx, ky := rx*kappa, ry*kappa
	c.MoveTo(cx+rx, cy)
	c.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	c.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	c.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	c.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	c.ClosePath()
}
