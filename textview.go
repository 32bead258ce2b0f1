package sceneview

import (
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/net/html"
)

// Text is a single line of text anchored at a baseline point.
type Text struct {
	Base
	text      string
	font      ColorFont
	alignment int
	y         int // baseline
	rect      Rect
	ratio     float64 // baseline offset within rect as a fraction of its height
	metrics   Metrics
}

func newEmptyText() *Text {
	return &Text{Base: newBase(), font: DefaultFont()}
}

// NewText lays out s at pt. alignment combines AlignLeft, AlignRight or
// AlignCenter with AlignBaseline, AlignTop or AlignBottom. A nil m uses the
// default font book.
func NewText(s string, pt Point, alignment int, font ColorFont, m Metrics) *Text {
	t := &Text{
		Base:      newBase(),
		text:      s,
		font:      font,
		alignment: alignment,
		y:         pt.Y,
		rect:      Rect{X: pt.X},
		metrics:   m,
	}
	t.layout()
	return t
}

// NewTextOrigin lays out s at the origin, left and baseline aligned.
func NewTextOrigin(s string, font ColorFont, m Metrics) *Text {
	return NewText(s, Point{}, AlignLeft|AlignBaseline, font, m)
}

func (t *Text) layout() {
	m := metricsOr(t.metrics)
	fm := m.Metrics(t.font)
	t.rect.Width = m.StringWidth(t.font, t.text)
	t.rect.Height = fm.Height

	switch {
	case t.alignment&AlignRight != 0:
		t.rect.X -= t.rect.Width
	case t.alignment&AlignCenter != 0:
		t.rect.X -= t.rect.Width / 2
	}
	switch {
	case t.alignment&AlignTop != 0:
		t.y += fm.Ascent
	case t.alignment&AlignBottom != 0:
		t.y -= fm.Descent
	}
	t.rect.Y = t.y - fm.Ascent
	t.updateRatio()
}

func (t *Text) updateRatio() {
	if t.rect.Height == 0 {
		t.ratio = 0
		return
	}
	t.ratio = float64(t.y-t.rect.Y) / float64(t.rect.Height)
}

// Class implements View.
func (t *Text) Class() string { return classText }

// Text returns the string.
func (t *Text) Text() string { return t.text }

// Font returns the font.
func (t *Text) Font() ColorFont { return t.font }

// Alignment returns the alignment bits the view was laid out with.
func (t *Text) Alignment() int { return t.alignment }

// Baseline returns the baseline y coordinate.
func (t *Text) Baseline() int { return t.y }

// TextPos returns the rectangle covering the runes [from, to).
func (t *Text) TextPos(from, to int) Rect {
	runes := []rune(t.text)
	from = max(0, min(from, len(runes)))
	to = max(from, min(to, len(runes)))
	m := metricsOr(t.metrics)
	r := Rect{
		X:      t.rect.X,
		Y:      t.rect.Y,
		Width:  m.StringWidth(t.font, string(runes[from:to])),
		Height: m.Metrics(t.font).Height,
	}
	if from > 0 {
		r.X += m.StringWidth(t.font, string(runes[:from])) + 1
	}
	return r
}

// Bounds keeps the unscaled origin and scales the size.
func (t *Text) Bounds() Rect {
	r := boundsOf(
		float64(t.rect.X)*t.sx, float64(t.rect.Y)*t.sy,
		float64(t.rect.Right())*t.sx, float64(t.rect.Bottom())*t.sy,
	)
	r.X, r.Y = t.rect.X, t.rect.Y
	return r
}

// Move implements View.
func (t *Text) Move(dx, dy int) {
	t.y += dy
	t.rect = t.rect.Translate(dx, dy)
}

// Intersects tests the unscaled text box.
func (t *Text) Intersects(r Rect) bool {
	return t.rect.Intersects(r)
}

// Paint draws the string with a face scaled by the vertical scale factor.
func (t *Text) Paint(c Canvas) {
	if !t.IsVisible() || t.text == "" {
		return
	}
	face := facesOf(t.metrics).Face(t.font, t.sy)
	if face == nil {
		Logger().Debug("sceneview: no face for text", "font", t.font.Name)
		return
	}
	r := t.Bounds()
	c.SetFillBrush(gg.Solid(rgba(t.font.Color)))
	c.SetFont(face)
	c.DrawString(t.text, float64(t.rect.X), float64(r.Y)+t.ratio*float64(r.Height))
}

// Equal implements View.
func (t *Text) Equal(other View) bool {
	o, ok := other.(*Text)
	if !ok {
		return false
	}
	return t.equalBase(&o.Base) && t.text == o.text && t.y == o.y &&
		t.alignment == o.alignment && t.rect == o.rect && t.font == o.font
}

// EncodeJSON writes the laid out geometry so decoding needs no metrics.
func (t *Text) EncodeJSON(*Codec) Object {
	return Object{
		"text":      t.text,
		"font":      t.font.EncodeJSON(),
		"alignment": AlignBaseline | AlignLeft,
		"x":         t.rect.X,
		"y":         t.y,
		"scaleX":    t.sx,
		"scaleY":    t.sy,
		"width":     t.rect.Width,
		"height":    t.rect.Height,
		"rect.y":    t.rect.Y,
	}
}

// DecodeJSON restores the geometry. Payloads without width, height or rect.y
// are laid out again with the default font book.
func (t *Text) DecodeJSON(_ *Codec, f Fields) {
	f.String("text", &t.text)
	if sub, ok := f.Object("font"); ok {
		t.font = DecodeColorFont(sub)
	}
	t.alignment = AlignBaseline | AlignLeft
	f.Int("x", &t.rect.X)
	f.Int("y", &t.y)
	sx, sy := 1.0, 1.0
	f.Float("scaleX", &sx)
	f.Float("scaleY", &sy)
	t.Scale(sx, sy)

	var w, h, ry int
	if f.Int("width", &w) && f.Int("height", &h) && f.Int("rect.y", &ry) {
		t.rect.Width, t.rect.Height, t.rect.Y = w, h, ry
		t.updateRatio()
		return
	}
	t.layout()
}

// HTML is text with simple markup rendered as plain lines inside a
// rectangle. Tags are dropped; br, p and div start new lines.
type HTML struct {
	Base
	text    string
	font    ColorFont
	pt      Point
	rect    Rect
	metrics Metrics
}

// NewHTML returns an HTML view at pt sized to its content.
func NewHTML(s string, font ColorFont, pt Point, m Metrics) *HTML {
	return NewHTMLSized(s, font, pt, 0, 0, m)
}

// NewHTMLSized returns an HTML view at least w by h large.
func NewHTMLSized(s string, font ColorFont, pt Point, w, h int, m Metrics) *HTML {
	v := &HTML{Base: newBase(), text: s, font: font, pt: pt, metrics: m}
	pw, ph := v.preferredSize()
	v.rect = Rect{X: pt.X, Y: pt.Y, Width: max(w, pw), Height: max(h, ph)}
	return v
}

func (v *HTML) preferredSize() (w, h int) {
	m := metricsOr(v.metrics)
	lines := htmlLines(v.text)
	for _, line := range lines {
		w = max(w, m.StringWidth(v.font, line))
	}
	return w, len(lines) * m.Metrics(v.font).Height
}

// htmlLines returns the text content of s split into lines.
func htmlLines(s string) []string {
	var (
		lines []string
		cur   strings.Builder
	)
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if line := strings.TrimSpace(cur.String()); line != "" || len(lines) == 0 {
				lines = append(lines, line)
			}
			return lines
		case html.TextToken:
			cur.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p", "div":
				if line := strings.TrimSpace(cur.String()); line != "" || string(name) == "br" {
					lines = append(lines, line)
				}
				cur.Reset()
			}
		}
	}
}

// Class implements View.
func (v *HTML) Class() string { return classHTML }

// Text returns the markup.
func (v *HTML) Text() string { return v.text }

// Bounds implements View.
func (v *HTML) Bounds() Rect { return v.rect }

// Move implements View.
func (v *HTML) Move(dx, dy int) {
	v.rect = v.rect.Translate(dx, dy)
}

// Resize changes the size keeping the top-left corner.
func (v *HTML) Resize(dw, dh int) {
	v.rect.Width += dw
	v.rect.Height += dh
}

// Intersects implements View.
func (v *HTML) Intersects(r Rect) bool { return v.rect.Intersects(r) }

// Paint draws the lines clipped to the view rectangle.
func (v *HTML) Paint(c Canvas) {
	if !v.IsVisible() {
		return
	}
	face := facesOf(v.metrics).Face(v.font, v.sy)
	if face == nil {
		return
	}
	fm := metricsOr(v.metrics).Metrics(v.font)
	c.Push()
	defer c.Pop()
	c.ClipRect(float64(v.rect.X), float64(v.rect.Y), float64(v.rect.Width), float64(v.rect.Height))
	c.SetFillBrush(gg.Solid(rgba(v.font.Color)))
	c.SetFont(face)
	for i, line := range htmlLines(v.text) {
		c.DrawString(line, float64(v.rect.X), float64(v.rect.Y+fm.Ascent+i*fm.Height))
	}
}

// Equal implements View.
func (v *HTML) Equal(other View) bool {
	o, ok := other.(*HTML)
	return ok && v.equalBase(&o.Base) && v.text == o.text && v.pt == o.pt && v.font == o.font
}

// EncodeJSON implements View.
func (v *HTML) EncodeJSON(*Codec) Object {
	return Object{
		"text":   v.text,
		"font":   v.font.EncodeJSON(),
		"x":      v.rect.X,
		"y":      v.rect.Y,
		"width":  v.rect.Width,
		"height": v.rect.Height,
	}
}

// DecodeJSON implements View.
func (v *HTML) DecodeJSON(_ *Codec, f Fields) {
	f.String("text", &v.text)
	if sub, ok := f.Object("font"); ok {
		v.font = DecodeColorFont(sub)
	}
	f.Int("x", &v.rect.X)
	f.Int("y", &v.rect.Y)
	f.Int("width", &v.rect.Width)
	f.Int("height", &v.rect.Height)
	v.pt = v.rect.Min()
}
