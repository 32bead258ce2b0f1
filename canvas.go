package sceneview

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	"github.com/gogpu/gg/text"
)

// Canvas is the drawing surface views paint on. Paths are built with
// MoveTo/LineTo/QuadraticTo/CubicTo and consumed by Fill or Stroke.
//
// NewCanvas adapts a *gg.Context for raster output and NewRecordingCanvas
// adapts a *recording.Recorder for command capture and vector export.
type Canvas interface {
	Push()
	Pop()
	Scale(sx, sy float64)
	Translate(dx, dy float64)

	SetFillBrush(b gg.Brush)
	SetStrokeBrush(b gg.Brush)
	SetLineWidth(w float64)
	SetDash(lengths ...float64)
	SetDashOffset(offset float64)
	ClearDash()

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	ClearPath()
	Fill() error
	Stroke() error

	// ClipRect intersects the clip with a rectangle in user coordinates.
	ClipRect(x, y, w, h float64)
	// ClipBounds returns the clip in user coordinates, false when unclipped.
	ClipBounds() (Rect, bool)

	SetFont(face text.Face)
	DrawString(s string, x, y float64)
	DrawImage(img image.Image, x, y int)
}

// clipState tracks the device clip and the scale part of the transform so
// that ClipBounds can answer in user coordinates.
type clipState struct {
	clip    Rect
	clipped bool
	sx, sy  float64
	tx, ty  float64
	saved   []clipState
}

func newClipState() clipState {
	return clipState{sx: 1, sy: 1}
}

func (s *clipState) push() {
	cp := *s
	cp.saved = nil
	s.saved = append(s.saved, cp)
}

func (s *clipState) pop() {
	if len(s.saved) == 0 {
		return
	}
	top := s.saved[len(s.saved)-1]
	top.saved = s.saved[:len(s.saved)-1]
	*s = top
}

func (s *clipState) scale(sx, sy float64) {
	s.sx *= sx
	s.sy *= sy
}

func (s *clipState) translate(dx, dy float64) {
	s.tx += dx * s.sx
	s.ty += dy * s.sy
}

func (s *clipState) clipRect(x, y, w, h float64) {
	dx0, dy0 := x*s.sx+s.tx, y*s.sy+s.ty
	dx1, dy1 := (x+w)*s.sx+s.tx, (y+h)*s.sy+s.ty
	r := boundsOf(math.Min(dx0, dx1), math.Min(dy0, dy1), math.Max(dx0, dx1), math.Max(dy0, dy1))
	if s.clipped {
		r = s.clip.Intersect(r)
	}
	s.clip, s.clipped = r, true
}

func (s *clipState) bounds() (Rect, bool) {
	if !s.clipped || s.sx == 0 || s.sy == 0 {
		return Rect{}, s.clipped
	}
	x0 := (float64(s.clip.X) - s.tx) / s.sx
	y0 := (float64(s.clip.Y) - s.ty) / s.sy
	x1 := (float64(s.clip.Right()) - s.tx) / s.sx
	y1 := (float64(s.clip.Bottom()) - s.ty) / s.sy
	return boundsOf(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1)), true
}

// contextCanvas adapts *gg.Context.
type contextCanvas struct {
	*gg.Context
	state clipState
}

// NewCanvas returns a Canvas drawing into dc.
func NewCanvas(dc *gg.Context) Canvas {
	return &contextCanvas{Context: dc, state: newClipState()}
}

func (c *contextCanvas) Push() {
	c.Context.Push()
	c.state.push()
}

func (c *contextCanvas) Pop() {
	c.Context.Pop()
	c.state.pop()
}

func (c *contextCanvas) Scale(sx, sy float64) {
	c.Context.Scale(sx, sy)
	c.state.scale(sx, sy)
}

func (c *contextCanvas) Translate(dx, dy float64) {
	c.Context.Translate(dx, dy)
	c.state.translate(dx, dy)
}

func (c *contextCanvas) ClipRect(x, y, w, h float64) {
	c.Context.ClipRect(x, y, w, h)
	c.state.clipRect(x, y, w, h)
}

func (c *contextCanvas) ClipBounds() (Rect, bool) {
	return c.state.bounds()
}

func (c *contextCanvas) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	c.Context.DrawImage(gg.ImageBufFromImage(img), float64(x), float64(y))
}

// recordingCanvas adapts *recording.Recorder.
type recordingCanvas struct {
	*recording.Recorder
	state clipState
}

// NewRecordingCanvas returns a Canvas that appends to r.
func NewRecordingCanvas(r *recording.Recorder) Canvas {
	return &recordingCanvas{Recorder: r, state: newClipState()}
}

func (c *recordingCanvas) Push() {
	c.Recorder.Push()
	c.state.push()
}

func (c *recordingCanvas) Pop() {
	c.Recorder.Pop()
	c.state.pop()
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	c.Recorder.Scale(sx, sy)
	c.state.scale(sx, sy)
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	c.Recorder.Translate(dx, dy)
	c.state.translate(dx, dy)
}

func (c *recordingCanvas) Fill() error {
	c.Recorder.Fill()
	return nil
}

func (c *recordingCanvas) Stroke() error {
	c.Recorder.Stroke()
	return nil
}

func (c *recordingCanvas) ClipRect(x, y, w, h float64) {
	c.Recorder.DrawRectangle(x, y, w, h)
	c.Recorder.Clip()
	c.state.clipRect(x, y, w, h)
}

func (c *recordingCanvas) ClipBounds() (Rect, bool) {
	return c.state.bounds()
}

// strokeShape strokes the current path with pen, falling back to a thick red
// outline when the canvas rejects the stroke.
func strokeShape(c Canvas, class string, pen *Pen, build func()) {
	pen.apply(c)
	build()
	if err := c.Stroke(); err != nil {
		Logger().Warn("sceneview: stroke fallback", "err", &PaintError{Class: class, Op: "stroke", Err: err})
		c.ClearPath()
		failurePen.apply(c)
		build()
		_ = c.Stroke()
	}
}

// fillShape fills the current path with brush; a failure strokes the
// fallback outline instead.
func fillShape(c Canvas, class string, brush *Brush, bounds Rect, build func()) {
	c.SetFillBrush(brush.Paint(bounds))
	build()
	if err := c.Fill(); err != nil {
		Logger().Warn("sceneview: fill fallback", "err", &PaintError{Class: class, Op: "fill", Err: err})
		c.ClearPath()
		failurePen.apply(c)
		build()
		_ = c.Stroke()
	}
}
