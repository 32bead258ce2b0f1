package editor

import "github.com/gogpu/sceneview"

// Direction names the resize handle being dragged.
//
//	TopLeft     TopCenter     TopRight
//	MiddleLeft                MiddleRight
//	BottomLeft  BottomCenter  BottomRight
type Direction int

// Resize handles.
const (
	TopLeft Direction = iota + 1
	TopCenter
	TopRight
	MiddleLeft
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

func (d Direction) left() bool   { return d == TopLeft || d == MiddleLeft || d == BottomLeft }
func (d Direction) right() bool  { return d == TopRight || d == MiddleRight || d == BottomRight }
func (d Direction) top() bool    { return d == TopLeft || d == TopCenter || d == TopRight }
func (d Direction) bottom() bool { return d == BottomLeft || d == BottomCenter || d == BottomRight }

// Valid reports whether d is one of the eight handles.
func (d Direction) Valid() bool { return d >= TopLeft && d <= BottomRight }

// ResizeRect returns r after dragging handle d by (-dx, -dy). The result
// keeps a positive size and its origin stays inside r.
func ResizeRect(d Direction, r sceneview.Rect, dx, dy int) sceneview.Rect {
	out := r
	if d.left() {
		out.X -= dx
		out.Width += dx
	}
	if d.right() {
		out.Width -= dx
	}
	if d.top() {
		out.Y -= dy
		out.Height += dy
	}
	if d.bottom() {
		out.Height -= dy
	}
	if out.Width <= 0 {
		out.Width = 1
	}
	if out.Height <= 0 {
		out.Height = 1
	}
	if out.X >= r.Right() {
		out.X = r.Right() - 1
	}
	if out.Y >= r.Bottom() {
		out.Y = r.Bottom() - 1
	}
	return out
}

// resizeOffset is the move that keeps the opposite edges in place when the
// top or left edge is dragged from start to end. It never exceeds the view
// size.
func resizeOffset(d Direction, start, end sceneview.Point, r sceneview.Rect) sceneview.Point {
	var off sceneview.Point
	switch d {
	case TopLeft:
		off = sceneview.Pt(end.X-start.X, end.Y-start.Y)
	case TopCenter, TopRight:
		off = sceneview.Pt(0, end.Y-start.Y)
	case MiddleLeft, BottomLeft:
		off = sceneview.Pt(end.X-start.X, 0)
	}
	if off.X >= r.Width {
		off.X = r.Width - 1
	}
	if off.Y >= r.Height {
		off.Y = r.Height - 1
	}
	return off
}
