package sceneview

import "slices"

// Arrangement modes for AddArranged. The low nibble selects the horizontal
// rule and bits 4-6 the vertical rule; both carry REL. Combine one X and one
// Y mode with a bitwise or.
//
// Horizontal rules name the edge of the new view and the edge of the
// current composite bounds it is placed against: X_RL puts the left edge of
// the view at the right edge of the composite, X_LR puts its right edge at
// the left edge, and so on. Vertical rules read the same way with top and
// bottom.
const (
	REL = 0x08

	X_UN = 0x00 + REL
	X_RL = 0x01 + REL
	X_RC = 0x02 + REL
	X_RR = 0x03 + REL
	X_LL = 0x04 + REL
	X_LC = 0x05 + REL
	X_LR = 0x06 + REL
	X_CC = 0x07 + REL

	Y_UN = 0x00 + REL
	Y_TT = 0x10 + REL
	Y_TC = 0x20 + REL
	Y_TB = 0x30 + REL
	Y_BT = 0x40 + REL
	Y_BC = 0x50 + REL
	Y_BB = 0x60 + REL
	Y_CC = 0x70 + REL
)

// Container is a view with ordered children.
type Container interface {
	View
	Children() []View
}

// Composite is an ordered group of views. Children are painted in insertion
// order and hit-tested in reverse, so the last child is on top. Bounds are
// the union of the child bounds and are recomputed on every call.
type Composite struct {
	Base
	children []View
}

// NewComposite returns an empty group.
func NewComposite() *Composite {
	return &Composite{Base: newBase()}
}

// Class implements View.
func (c *Composite) Class() string { return classComposite }

// Children returns the child slice. Callers must not modify it.
func (c *Composite) Children() []View { return c.children }

// Len returns the number of children.
func (c *Composite) Len() int { return len(c.children) }

// At returns child i.
func (c *Composite) At(i int) View { return c.children[i] }

// Add appends v.
func (c *Composite) Add(v View) {
	if v == nil {
		return
	}
	c.children = append(c.children, v)
}

// Insert puts v at index i, shifting later children.
func (c *Composite) Insert(v View, i int) {
	if v == nil {
		return
	}
	c.children = slices.Insert(c.children, i, v)
}

// AddArranged places v relative to the current bounds according to mode and
// insets, then appends it. Insets are added for right-of and bottom-of
// rules and subtracted for the rules that put the far edge of v against the
// composite. Without REL the view keeps its position shifted by insets.
func (c *Composite) AddArranged(v View, mode int, insets Point) {
	r := v.Bounds()
	R := c.Bounds()
	right, bottom := R.Right(), R.Bottom()

	x, y := r.X+insets.X, r.Y+insets.Y
	if mode&REL != 0 {
		switch mode & 0x0F {
		case X_RL:
			x = right + insets.X
		case X_RC:
			x = right - r.Width/2 + insets.X
		case X_RR:
			x = right - r.Width - insets.X
		case X_LL:
			x = R.X + insets.X
		case X_LC:
			x = R.X - r.Width/2 + insets.X
		case X_LR:
			x = R.X - r.Width - insets.X
		case X_CC:
			x = R.X + R.Width/2 - r.Width/2 + insets.X
		}
		switch mode & 0x78 {
		case Y_BT:
			y = bottom + insets.Y
		case Y_BC:
			y = bottom - r.Height/2 + insets.Y
		case Y_BB:
			y = bottom - r.Height - insets.Y
		case Y_TT:
			y = R.Y + insets.Y
		case Y_TC:
			y = R.Y - r.Height/2 + insets.Y
		case Y_TB:
			y = R.Y - r.Height - insets.Y
		case Y_CC:
			y = R.Y + R.Height/2 - r.Height/2 + insets.Y
		}
	}
	v.Move(x-r.X, y-r.Y)
	c.Add(v)
}

// Remove deletes v from the children or, failing that, from the nearest
// descendant composite holding it. It reports whether v was found.
func (c *Composite) Remove(v View) bool {
	if i := slices.Index(c.children, v); i >= 0 {
		c.children = slices.Delete(c.children, i, i+1)
		return true
	}
	for _, child := range c.children {
		if sub, ok := child.(interface{ Remove(View) bool }); ok && sub.Remove(v) {
			return true
		}
	}
	return false
}

// Clear removes every child.
func (c *Composite) Clear() {
	c.children = nil
}

// Bounds returns the union of the child bounds, or the zero rectangle when
// there are no children.
func (c *Composite) Bounds() Rect {
	if len(c.children) == 0 {
		return Rect{}
	}
	r := c.children[0].Bounds()
	for _, v := range c.children[1:] {
		r = r.Union(v.Bounds())
	}
	return r
}

// UpdateBounds returns the freshly computed bounds. It exists for callers
// that mutate descendants directly; Bounds never goes stale.
func (c *Composite) UpdateBounds() Rect {
	return c.Bounds()
}

// Move implements View.
func (c *Composite) Move(dx, dy int) {
	for _, v := range c.children {
		v.Move(dx, dy)
	}
}

// Scale scales every child and the group factors.
func (c *Composite) Scale(sx, sy float64) {
	for _, v := range c.children {
		v.Scale(sx, sy)
	}
	c.sx *= sx
	c.sy *= sy
}

// SetToScale scales the children by the ratio to the current factors.
func (c *Composite) SetToScale(sx, sy float64) {
	if c.sx == 0 || c.sy == 0 {
		c.setScale(sx, sy)
		return
	}
	c.Scale(sx/c.sx, sy/c.sy)
}

// Intersects reports whether the group is visible and some child meets r.
func (c *Composite) Intersects(r Rect) bool {
	if !c.IsVisible() || !c.Bounds().Intersects(r) {
		return false
	}
	for _, v := range c.children {
		if v.Intersects(r) {
			return true
		}
	}
	return false
}

// SelectionPriority is the highest priority among the children.
func (c *Composite) SelectionPriority(r Rect) int {
	p := 0
	for _, v := range c.children {
		p = max(p, v.SelectionPriority(r))
	}
	return p
}

// Paint draws the children in order. Groups outside the canvas clip are
// skipped.
func (c *Composite) Paint(cv Canvas) {
	if clip, ok := cv.ClipBounds(); ok && !c.Bounds().Intersects(clip) {
		return
	}
	if !c.IsVisible() {
		return
	}
	for _, v := range c.children {
		v.Paint(cv)
	}
}

// Equal compares the envelope, the bounds and the children pairwise.
func (c *Composite) Equal(other View) bool {
	o, ok := other.(*Composite)
	return ok && c.equalComposite(o)
}

func (c *Composite) equalComposite(o *Composite) bool {
	if c == o {
		return true
	}
	if !c.equalBase(&o.Base) || c.Bounds() != o.Bounds() || len(c.children) != len(o.children) {
		return false
	}
	for i, v := range c.children {
		if !v.Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// EncodeJSON writes the visible children.
func (c *Composite) EncodeJSON(codec *Codec) Object {
	return Object{"children": c.encodeChildren(codec)}
}

func (c *Composite) encodeChildren(codec *Codec) []Object {
	if codec != nil && codec.shallow {
		return nil
	}
	out := make([]Object, 0, len(c.children))
	for _, v := range c.children {
		if v.State().IsVisible() {
			out = append(out, codec.Encode(v))
		}
	}
	return out
}

// DecodeJSON adds every decodable child; unknown classes are dropped.
func (c *Composite) DecodeJSON(codec *Codec, f Fields) {
	items, ok := f.Array("children")
	if !ok {
		return
	}
	for _, raw := range items {
		if v := codec.DecodeRaw(raw); v != nil {
			c.Add(v)
		}
	}
}

// SetPen gives every shape descendant the pen.
func (c *Composite) SetPen(p *Pen) {
	for _, v := range c.children {
		if s, ok := v.(interface{ SetPen(*Pen) }); ok {
			s.SetPen(p)
		}
	}
}

// SetBrush gives every shape descendant the brush.
func (c *Composite) SetBrush(b *Brush) {
	for _, v := range c.children {
		if s, ok := v.(interface{ SetBrush(*Brush) }); ok {
			s.SetBrush(b)
		}
	}
}

// Find returns the first view in depth-first paint order whose model is m.
func (c *Composite) Find(m any) View {
	return findIn(c, m)
}

func findIn(c Container, m any) View {
	for _, v := range c.Children() {
		if v.State().model == m {
			return v
		}
		if sub, ok := v.(Container); ok {
			if found := findIn(sub, m); found != nil {
				return found
			}
		}
	}
	return nil
}
