package sceneview

import "fmt"

// Flags is the view state bitset serialized as the "type" field.
type Flags int

// View flags.
const (
	// Active views take part in hit-testing.
	Active Flags = 4
	// Hidden views are neither painted nor serialized by their parent.
	Hidden Flags = 8
	// Selectable views may be selected by the editing session.
	Selectable Flags = 16
)

// Text alignment for text views. Horizontal and vertical values are combined
// with a bitwise or; Left and Baseline are the zero values.
const (
	AlignLeft     = 0
	AlignRight    = 1
	AlignCenter   = 2
	AlignBaseline = 0
	AlignBottom   = 8
	AlignTop      = 16
)

// View is a drawable, hit-testable scene node.
//
// The variant set is closed: every concrete view embeds Base and is paired
// with a decoder in the Codec class table. Views are not safe for concurrent
// use; a tree must not be mutated while it is being painted, hit-tested or
// encoded.
type View interface {
	// State returns the shared state (flags, model, description, scale).
	State() *Base

	// Class returns the serialization tag of the variant.
	Class() string

	// Bounds returns the integer rectangle enclosing the view.
	Bounds() Rect

	// Move translates the view in place.
	Move(dx, dy int)

	// Scale multiplies the current scale factors.
	Scale(sx, sy float64)

	// SetToScale replaces the scale factors.
	SetToScale(sx, sy float64)

	// Intersects reports whether the view geometry meets r.
	Intersects(r Rect) bool

	// SelectionPriority breaks hit-test ties; higher wins.
	SelectionPriority(r Rect) int

	// Paint draws the view on c. Hidden views paint nothing.
	Paint(c Canvas)

	// Equal reports structural equality with other.
	Equal(other View) bool

	// EncodeJSON returns the variant fields merged into the envelope.
	EncodeJSON(codec *Codec) Object

	// DecodeJSON restores variant fields, skipping malformed ones.
	DecodeJSON(codec *Codec, f Fields)
}

// Base holds the state shared by every view.
type Base struct {
	flags       Flags
	model       any
	description string
	sx, sy      float64
}

func newBase() Base {
	return Base{sx: 1, sy: 1}
}

// State implements View.
func (b *Base) State() *Base { return b }

// Flags returns the raw flag set.
func (b *Base) Flags() Flags { return b.flags }

// SetFlags replaces the raw flag set.
func (b *Base) SetFlags(f Flags) { b.flags = f }

// IsVisible reports whether the view is painted.
func (b *Base) IsVisible() bool { return b.flags&Hidden == 0 }

// SetVisible shows or hides the view.
func (b *Base) SetVisible(visible bool) {
	if visible {
		b.flags &^= Hidden
	} else {
		b.flags |= Hidden
	}
}

// IsActive reports whether the view takes part in hit-testing.
func (b *Base) IsActive() bool { return b.flags&Active != 0 }

// SetActive makes the view active and selectable, or neither.
func (b *Base) SetActive(active bool) {
	if active {
		b.flags |= Active | Selectable
	} else {
		b.flags &^= Active | Selectable
	}
}

// IsSelectable reports whether the editing session may select the view.
func (b *Base) IsSelectable() bool { return b.flags&Selectable != 0 }

// SetSelectable sets or clears the selectable flag.
func (b *Base) SetSelectable(selectable bool) {
	if selectable {
		b.flags |= Selectable
	} else {
		b.flags &^= Selectable
	}
}

// Model returns the domain object handle the view represents, or nil.
func (b *Base) Model() any { return b.model }

// SetModel attaches a domain object handle. The handle must be comparable
// with ==; pointers and identifier values are typical.
func (b *Base) SetModel(m any) { b.model = m }

// Description returns the tooltip text.
func (b *Base) Description() string { return b.description }

// SetDescription sets the tooltip text.
func (b *Base) SetDescription(s string) { b.description = s }

// ScaleFactors returns the current scale.
func (b *Base) ScaleFactors() (sx, sy float64) { return b.sx, b.sy }

func (b *Base) setScale(sx, sy float64) {
	b.sx, b.sy = sx, sy
}

// equalBase compares flags and model string forms.
// EqualBase reports whether b and o carry the same flags and model. Views
// defined outside this package use it in Equal.
func (b *Base) EqualBase(o *Base) bool { return b.equalBase(o) }

func (b *Base) equalBase(o *Base) bool {
	return b.flags == o.flags && sameModel(b.model, o.model)
}

func sameModel(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// Location returns the top-left corner of the view bounds.
func Location(v View) Point {
	return v.Bounds().Min()
}

// SetLocation moves v so that its bounds start at (x, y).
func SetLocation(v View, x, y int) {
	b := v.Bounds()
	v.Move(x-b.X, y-b.Y)
}

// Visible reports whether v is non-nil and not hidden.
func Visible(v View) bool {
	return v != nil && v.State().IsVisible()
}

// Scale multiplies the scale factors.
func (b *Base) Scale(sx, sy float64) {
	b.sx *= sx
	b.sy *= sy
}

// SetToScale replaces the scale factors.
func (b *Base) SetToScale(sx, sy float64) {
	b.setScale(sx, sy)
}

// SelectionPriority is 0 for plain views.
func (b *Base) SelectionPriority(Rect) int { return 0 }
