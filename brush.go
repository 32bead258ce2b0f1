package sceneview

import (
	"encoding/json"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// gradientLength is the length of the implicit gradient vector.
const gradientLength = 100

// Brush is a fill style: a solid color or a two-color linear gradient whose
// direction is an angle measured from the vertical axis. A nil *Brush does
// not fill.
type Brush struct {
	color1   color.NRGBA
	color2   color.NRGBA
	gradient bool
	angle    float64 // radians
}

// NewBrush returns a solid brush.
func NewBrush(c color.NRGBA) *Brush {
	return &Brush{color1: c}
}

// NewGradientBrush returns a gradient from c1 to c2 turned by angle degrees
// from the vertical.
func NewGradientBrush(c1, c2 color.NRGBA, angle float64) *Brush {
	return &Brush{color1: c1, color2: c2, gradient: true, angle: angle * math.Pi / 180}
}

// IsGradient reports whether the brush is a gradient.
func (b *Brush) IsGradient() bool { return b.gradient }

// SetGradient switches between solid and gradient. A new gradient starts
// vertical with both stops set to the current color.
func (b *Brush) SetGradient(gradient bool) {
	if gradient == b.gradient {
		return
	}
	b.gradient = gradient
	if gradient {
		b.color2 = b.color1
		b.angle = 0
	}
}

// Color returns the solid color or the first gradient stop.
func (b *Brush) Color() color.NRGBA { return b.color1 }

// SetColor replaces the solid color or the first gradient stop.
func (b *Brush) SetColor(c color.NRGBA) { b.color1 = c }

// Color2 returns the second gradient stop, or the solid color.
func (b *Brush) Color2() color.NRGBA {
	if !b.gradient {
		return b.color1
	}
	return b.color2
}

// SetColor2 replaces the second gradient stop. On a solid brush it replaces
// the color.
func (b *Brush) SetColor2(c color.NRGBA) {
	if !b.gradient {
		b.color1 = c
		return
	}
	b.color2 = c
}

// Angle returns the gradient angle in degrees, 0 for solid brushes.
func (b *Brush) Angle() float64 {
	if !b.gradient {
		return 0
	}
	return b.angle * 180 / math.Pi
}

// SetAngle sets the gradient angle in degrees. Solid brushes ignore it.
func (b *Brush) SetAngle(deg float64) {
	if !b.gradient {
		return
	}
	b.angle = deg * math.Pi / 180
}

// Vector returns the implicit gradient end point; the start is the origin.
func (b *Brush) Vector() (x, y float64) {
	return gradientLength * math.Sin(b.angle), gradientLength * math.Cos(b.angle)
}

// Clone returns a copy of b.
func (b *Brush) Clone() *Brush {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// Equal reports structural equality including the gradient vector.
func (b *Brush) Equal(o *Brush) bool {
	if b == nil || o == nil {
		return b == nil && o == nil
	}
	if b.gradient != o.gradient || b.color1 != o.color1 {
		return false
	}
	if !b.gradient {
		return true
	}
	return b.color2 == o.color2 && float32(b.angle) == float32(o.angle)
}

// Paint returns the gg brush for filling bounds. Gradients run through the
// centre of bounds, spanning its projection on the gradient direction.
func (b *Brush) Paint(bounds Rect) gg.Brush {
	if !b.gradient {
		return gg.Solid(rgba(b.color1))
	}
	sin, cos := math.Sin(b.angle), math.Cos(b.angle)
	proj := (math.Abs(float64(bounds.Width)*sin) + math.Abs(float64(bounds.Height)*cos)) / 2
	cx := float64(bounds.X) + float64(bounds.Width)/2
	cy := float64(bounds.Y) + float64(bounds.Height)/2
	return gg.NewLinearGradientBrush(cx-proj*sin, cy-proj*cos, cx+proj*sin, cy+proj*cos).
		AddColorStop(0, rgba(b.color1)).
		AddColorStop(1, rgba(b.color2))
}

// EncodeJSON returns {color, color2?, angle?}; the angle is in radians and
// omitted when negligible.
func (b *Brush) EncodeJSON() Object {
	obj := Object{"color": encodeColor(b.color1)}
	if b.gradient {
		obj["color2"] = encodeColor(b.color2)
		if math.Abs(b.angle) > 0.0001 {
			obj["angle"] = b.angle
		}
	}
	return obj
}

// DecodeBrush reads a brush, defaulting to solid black.
func DecodeBrush(f Fields) *Brush {
	b := NewBrush(Black)
	if raw, ok := f["color"]; ok {
		if c, ok := decodeColor(raw); ok {
			b.color1 = c
		}
	}
	if raw, ok := f["color2"]; ok && !rawIsNull(raw) {
		if c, ok := decodeColor(raw); ok {
			b.gradient = true
			b.color2 = c
			f.Float("angle", &b.angle)
		}
	}
	return b
}

// decodeStyle reads the optional "pen" and "brush" members.
func decodeStyle(f Fields) (*Pen, *Brush) {
	var pen *Pen
	var brush *Brush
	if sub, ok := f.Object("pen"); ok {
		pen = DecodePen(sub)
	}
	if sub, ok := f.Object("brush"); ok {
		brush = DecodeBrush(sub)
	}
	return pen, brush
}

// rawIsNull reports whether raw is the JSON literal null.
func rawIsNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
