package sceneview

import (
	"encoding/json"
	"image/color"
	"math"
	"slices"

	"github.com/gogpu/gg"
)

// Common colors.
var (
	Black     = color.NRGBA{A: 255}
	White     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red       = color.NRGBA{R: 255, A: 255}
	Blue      = color.NRGBA{B: 255, A: 255}
	Gray      = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	LightGray = color.NRGBA{R: 192, G: 192, B: 192, A: 255}
)

// rgba converts an 8-bit color to gg's float color.
func rgba(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func encodeColor(c color.NRGBA) []int {
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}
}

// decodeColor reads [r,g,b] or [r,g,b,a]; alpha defaults to opaque.
func decodeColor(raw json.RawMessage) (color.NRGBA, bool) {
	var comps []float64
	if err := json.Unmarshal(raw, &comps); err != nil || len(comps) < 3 {
		return color.NRGBA{}, false
	}
	c := color.NRGBA{R: clampByte(comps[0]), G: clampByte(comps[1]), B: clampByte(comps[2]), A: 255}
	if len(comps) > 3 {
		c.A = clampByte(comps[3])
	}
	return c, true
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Pen is a stroke style. A nil *Pen draws no outline.
type Pen struct {
	width float64
	color color.NRGBA
	dash  *gg.Dash
}

// NewPen returns a solid pen.
func NewPen(width float64, c color.NRGBA) *Pen {
	return &Pen{width: width, color: c}
}

// DefaultPen returns a black pen one unit wide.
func DefaultPen() *Pen {
	return NewPen(1, Black)
}

// NewDashedPen returns a pen stroking with the given dash lengths.
func NewDashedPen(width float64, c color.NRGBA, offset float64, lengths ...float64) *Pen {
	p := NewPen(width, c)
	if d := gg.NewDash(lengths...); d != nil {
		p.dash = d.WithOffset(offset)
	}
	return p
}

// Width returns the stroke width.
func (p *Pen) Width() float64 { return p.width }

// SetWidth replaces the stroke width.
func (p *Pen) SetWidth(w float64) { p.width = w }

// WithWidth returns a copy of p with another width.
func (p *Pen) WithWidth(w float64) *Pen {
	q := p.Clone()
	q.width = w
	return q
}

// Color returns the stroke color.
func (p *Pen) Color() color.NRGBA { return p.color }

// SetColor replaces the stroke color.
func (p *Pen) SetColor(c color.NRGBA) { p.color = c }

// Dash returns a copy of the dash pattern, or nil for solid strokes.
func (p *Pen) Dash() *gg.Dash { return p.dash.Clone() }

// SetDash replaces the dash pattern; nil makes the pen solid.
func (p *Pen) SetDash(d *gg.Dash) { p.dash = d.Clone() }

// Clone returns a deep copy of p.
func (p *Pen) Clone() *Pen {
	if p == nil {
		return nil
	}
	return &Pen{width: p.width, color: p.color, dash: p.dash.Clone()}
}

// Equal reports structural equality. Two nil pens are equal.
func (p *Pen) Equal(o *Pen) bool {
	if p == nil || o == nil {
		return p == nil && o == nil
	}
	if p.width != o.width || p.color != o.color {
		return false
	}
	if (p.dash == nil) != (o.dash == nil) {
		return false
	}
	return p.dash == nil || (p.dash.Offset == o.dash.Offset && slices.Equal(p.dash.Array, o.dash.Array))
}

// halfWidth is the integer half stroke width used to grow bounds.
func (p *Pen) halfWidth() int {
	if p == nil {
		return 0
	}
	return int(p.width / 2)
}

// apply configures the canvas stroke.
func (p *Pen) apply(c Canvas) {
	c.SetStrokeBrush(gg.Solid(rgba(p.color)))
	c.SetLineWidth(p.width)
	if p.dash != nil {
		c.SetDash(p.dash.Array...)
		c.SetDashOffset(p.dash.Offset)
	} else {
		c.ClearDash()
	}
}

// EncodeJSON returns {color, width, dash?, dashOffset?}.
func (p *Pen) EncodeJSON() Object {
	obj := Object{
		"color": encodeColor(p.color),
		"width": p.width,
	}
	if p.dash != nil {
		obj["dash"] = slices.Clone(p.dash.Array)
		if p.dash.Offset != 0 {
			obj["dashOffset"] = p.dash.Offset
		}
	}
	return obj
}

// DecodePen reads a pen, starting from DefaultPen and skipping malformed
// members.
func DecodePen(f Fields) *Pen {
	p := DefaultPen()
	if raw, ok := f["color"]; ok {
		if c, ok := decodeColor(raw); ok {
			p.color = c
		}
	}
	f.Float("width", &p.width)
	var dash []float64
	if f.Floats("dash", &dash) {
		if d := gg.NewDash(dash...); d != nil {
			var off float64
			f.Float("dashOffset", &off)
			p.dash = d.WithOffset(off)
		}
	}
	return p
}

// failurePen is used when a stroke or fill fails.
var failurePen = NewPen(3, Red)

func roundHalf(w float64) int {
	return int(math.Ceil(w / 2))
}
