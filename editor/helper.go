package editor

import (
	"fmt"
	"slices"

	"github.com/gogpu/sceneview"
)

// Helper applies edits to the scene on behalf of a Session. Implementations
// own the mapping between views and the domain model: a diagram helper
// moves the model node and rebuilds its view, a plain helper moves the view.
//
// Helpers may record undoable edits with Session.AddEdit while a
// transaction is open.
type Helper interface {
	// Register is called once by NewSession.
	Register(s *Session)

	// MoveView moves v by offset and returns the offset applied.
	MoveView(v sceneview.View, offset sceneview.Point) (sceneview.Point, error)

	// ResizeView moves v by offset, then grows it by size, and returns the
	// size change applied.
	ResizeView(v sceneview.View, offset, size sceneview.Point) (sceneview.Point, error)

	// Add creates a view for obj at p.
	Add(obj any, p sceneview.Point) (sceneview.View, error)

	// RemoveView deletes v and reports whether it was found.
	RemoveView(v sceneview.View) (bool, error)

	// CanAccept reports whether v may be dropped into c.
	CanAccept(c sceneview.Container, v sceneview.View) bool

	// IsResizable reports whether v has resize handles.
	IsResizable(v sceneview.View) bool
}

// resizer is implemented by views with an explicit size, such as boxes and
// HTML text.
type resizer interface {
	Resize(dw, dh int)
}

// DefaultHelper edits views in place inside a root composite and records
// every change as an undoable edit.
type DefaultHelper struct {
	Root    *sceneview.Composite
	session *Session
}

// NewDefaultHelper returns a helper editing root.
func NewDefaultHelper(root *sceneview.Composite) *DefaultHelper {
	return &DefaultHelper{Root: root}
}

// Register implements Helper.
func (h *DefaultHelper) Register(s *Session) { h.session = s }

func (h *DefaultHelper) record(e Edit) {
	if h.session != nil {
		h.session.AddEdit(e)
	}
}

// MoveView implements Helper.
func (h *DefaultHelper) MoveView(v sceneview.View, offset sceneview.Point) (sceneview.Point, error) {
	v.Move(offset.X, offset.Y)
	h.record(NewEdit(
		func() { v.Move(-offset.X, -offset.Y) },
		func() { v.Move(offset.X, offset.Y) },
	))
	return offset, nil
}

// ResizeView implements Helper. Only views with an explicit size can be
// resized; the result must keep a positive size.
func (h *DefaultHelper) ResizeView(v sceneview.View, offset, size sceneview.Point) (sceneview.Point, error) {
	r, ok := v.(resizer)
	if !ok {
		return sceneview.Point{}, fmt.Errorf("editor: resize %s: %w", v.Class(), ErrNotResizable)
	}
	if b := v.Bounds(); b.Width+size.X <= 0 || b.Height+size.Y <= 0 {
		return sceneview.Point{}, fmt.Errorf("editor: resize %s by %v: %w", v.Class(), size, ErrEmptyBounds)
	}
	if offset != (sceneview.Point{}) {
		if _, err := h.MoveView(v, offset); err != nil {
			return sceneview.Point{}, err
		}
	}
	r.Resize(size.X, size.Y)
	h.record(NewEdit(
		func() { r.Resize(-size.X, -size.Y) },
		func() { r.Resize(size.X, size.Y) },
	))
	return size, nil
}

// Add implements Helper. obj must be a view; it is moved so that its
// top-left corner is at p and appended to the root.
func (h *DefaultHelper) Add(obj any, p sceneview.Point) (sceneview.View, error) {
	v, ok := obj.(sceneview.View)
	if !ok {
		return nil, fmt.Errorf("editor: add %T: %w", obj, ErrUnsupported)
	}
	sceneview.SetLocation(v, p.X, p.Y)
	h.Root.Add(v)
	h.record(NewEdit(
		func() { h.Root.Remove(v) },
		func() { h.Root.Add(v) },
	))
	return v, nil
}

// inserter is implemented by composites.
type inserter interface {
	sceneview.Container
	Insert(v sceneview.View, i int)
	Remove(v sceneview.View) bool
}

// RemoveView implements Helper. Undo puts v back at its old index.
func (h *DefaultHelper) RemoveView(v sceneview.View) (bool, error) {
	parent, i := parentOf(h.Root, v)
	if parent == nil {
		return false, nil
	}
	parent.Remove(v)
	h.record(NewEdit(
		func() { parent.Insert(v, i) },
		func() { parent.Remove(v) },
	))
	return true, nil
}

// CanAccept implements Helper: only the root takes new children.
func (h *DefaultHelper) CanAccept(c sceneview.Container, _ sceneview.View) bool {
	return c == sceneview.Container(h.Root)
}

// IsResizable implements Helper.
func (h *DefaultHelper) IsResizable(v sceneview.View) bool {
	_, ok := v.(resizer)
	return ok
}

// parentOf finds the composite holding v and its index.
func parentOf(c inserter, v sceneview.View) (inserter, int) {
	children := c.Children()
	if i := slices.Index(children, v); i >= 0 {
		return c, i
	}
	for _, child := range children {
		if sub, ok := child.(inserter); ok {
			if p, i := parentOf(sub, v); p != nil {
				return p, i
			}
		}
	}
	return nil, -1
}
