package sceneview

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Font styles, combined with a bitwise or.
const (
	Plain  = 0
	Bold   = 1
	Italic = 2
)

// ColorFont is a font family, style and size together with a text color.
type ColorFont struct {
	Name  string
	Style int
	Size  int
	Color color.NRGBA
}

// NewColorFont returns a font description.
func NewColorFont(name string, style, size int, c color.NRGBA) ColorFont {
	return ColorFont{Name: name, Style: style, Size: size, Color: c}
}

// DefaultFont is 12pt plain Courier in black.
func DefaultFont() ColorFont {
	return ColorFont{Name: "Courier", Style: Plain, Size: 12, Color: Black}
}

// WithSize returns f at another size.
func (f ColorFont) WithSize(size int) ColorFont {
	f.Size = size
	return f
}

// WithStyle returns f with another style.
func (f ColorFont) WithStyle(style int) ColorFont {
	f.Style = style
	return f
}

// EncodeJSON returns {font: [name, style, size], color: [r,g,b,a]}.
func (f ColorFont) EncodeJSON() Object {
	return Object{
		"font":  []any{f.Name, f.Style, f.Size},
		"color": encodeColor(f.Color),
	}
}

// DecodeColorFont reads a font, keeping DefaultFont values for anything
// malformed.
func DecodeColorFont(fs Fields) ColorFont {
	f := DefaultFont()
	var parts []json.RawMessage
	if raw, ok := fs["font"]; ok && json.Unmarshal(raw, &parts) == nil && len(parts) >= 3 {
		var name string
		var style, size float64
		if json.Unmarshal(parts[0], &name) == nil &&
			json.Unmarshal(parts[1], &style) == nil &&
			json.Unmarshal(parts[2], &size) == nil {
			f.Name, f.Style, f.Size = name, int(style), int(size)
		}
	}
	if raw, ok := fs["color"]; ok {
		if c, ok := decodeColor(raw); ok {
			f.Color = c
		}
	}
	return f
}

// FontMetrics holds integer line metrics for one font.
type FontMetrics struct {
	Ascent  int
	Descent int
	Height  int
}

// Metrics measures strings and lines. FontBook is the gg/text backed
// implementation; tests may supply fixed-width fakes.
type Metrics interface {
	Metrics(f ColorFont) FontMetrics
	StringWidth(f ColorFont, s string) int
}

// family holds the TTF data for the four styles of one family.
type family struct {
	faces [4][]byte
}

type sourceKey struct {
	family string
	style  int
}

type faceKey struct {
	family string
	style  int
	size   float64
}

// FontBook resolves ColorFont descriptions to gg/text faces. Families are
// matched by lower-cased name; names containing "mono" or "courier" map to
// Go Mono and everything else to Go Regular unless registered explicitly.
//
// FontBook is safe for concurrent use.
type FontBook struct {
	mu       sync.Mutex
	families map[string]family
	sources  map[sourceKey]*text.FontSource
	faces    map[faceKey]text.Face
}

// NewFontBook returns a font book with the bundled Go fonts.
func NewFontBook() *FontBook {
	fb := &FontBook{
		families: make(map[string]family),
		sources:  make(map[sourceKey]*text.FontSource),
		faces:    make(map[faceKey]text.Face),
	}
	fb.families["go"] = family{faces: [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}}
	fb.families["mono"] = family{faces: [4][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF}}
	return fb
}

// RegisterFamily adds font data for a family name. Missing styles fall back
// to regular.
func (fb *FontBook) RegisterFamily(name string, regular, bold, italic, boldItalic []byte) error {
	if len(regular) == 0 {
		return fmt.Errorf("sceneview: family %q: %w", name, text.ErrEmptyFontData)
	}
	fam := family{faces: [4][]byte{regular, bold, italic, boldItalic}}
	for i := range fam.faces {
		if len(fam.faces[i]) == 0 {
			fam.faces[i] = regular
		}
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := strings.ToLower(name)
	fb.families[n] = fam
	for k, src := range fb.sources {
		if k.family == n {
			_ = src.Close()
			delete(fb.sources, k)
		}
	}
	for k := range fb.faces {
		if k.family == n {
			delete(fb.faces, k)
		}
	}
	return nil
}

func (fb *FontBook) familyName(name string) string {
	n := strings.ToLower(name)
	if _, ok := fb.families[n]; ok {
		return n
	}
	if strings.Contains(n, "mono") || strings.Contains(n, "courier") {
		return "mono"
	}
	return "go"
}

// Face returns the face for f scaled by scale, or nil if the font data
// cannot be parsed.
func (fb *FontBook) Face(f ColorFont, scale float64) text.Face {
	if scale <= 0 {
		scale = 1
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()

	name := fb.familyName(f.Name)
	key := faceKey{family: name, style: f.Style & (Bold | Italic), size: float64(f.Size) * scale}
	if face, ok := fb.faces[key]; ok {
		return face
	}
	sk := sourceKey{family: name, style: key.style}
	src, ok := fb.sources[sk]
	if !ok {
		var err error
		src, err = text.NewFontSource(fb.families[name].faces[key.style])
		if err != nil {
			Logger().Warn("sceneview: font source failed", "family", name, "err", err)
			return nil
		}
		fb.sources[sk] = src
	}
	face := src.Face(key.size)
	fb.faces[key] = face
	return face
}

// Metrics implements Metrics.
func (fb *FontBook) Metrics(f ColorFont) FontMetrics {
	face := fb.Face(f, 1)
	if face == nil {
		return FontMetrics{Ascent: f.Size, Height: f.Size}
	}
	m := face.Metrics()
	fm := FontMetrics{
		Ascent:  int(math.Ceil(m.Ascent)),
		Descent: int(math.Ceil(m.Descent)),
	}
	fm.Height = fm.Ascent + fm.Descent + int(math.Ceil(m.LineGap))
	return fm
}

// StringWidth implements Metrics.
func (fb *FontBook) StringWidth(f ColorFont, s string) int {
	face := fb.Face(f, 1)
	if face == nil {
		return len([]rune(s)) * f.Size / 2
	}
	return int(math.Round(face.Advance(s)))
}

// Close releases every parsed font source.
func (fb *FontBook) Close() error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	var errs []error
	for k, src := range fb.sources {
		if err := src.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(fb.sources, k)
	}
	clear(fb.faces)
	return errors.Join(errs...)
}

// FixedMetrics is a Metrics with fixed advance and line sizes. It keeps
// layout deterministic where real glyph metrics do not matter.
type FixedMetrics struct {
	Advance int
	Ascent  int
	Descent int
}

// Metrics implements Metrics.
func (m FixedMetrics) Metrics(ColorFont) FontMetrics {
	return FontMetrics{Ascent: m.Ascent, Descent: m.Descent, Height: m.Ascent + m.Descent}
}

// StringWidth implements Metrics.
func (m FixedMetrics) StringWidth(_ ColorFont, s string) int {
	return m.Advance * len([]rune(s))
}

// FaceSource resolves fonts to gg/text faces for drawing.
type FaceSource interface {
	Face(f ColorFont, scale float64) text.Face
}

var defaultFontBook = sync.OnceValue(NewFontBook)

// DefaultFontBook returns the shared font book used by views built without
// explicit metrics, such as decoded text views.
func DefaultFontBook() *FontBook {
	return defaultFontBook()
}

// metricsOr returns m, or the default font book when m is nil.
func metricsOr(m Metrics) Metrics {
	if m == nil {
		return DefaultFontBook()
	}
	return m
}

// facesOf returns the face source behind m, falling back to the default
// font book for metrics that cannot draw.
func facesOf(m Metrics) FaceSource {
	if fs, ok := m.(FaceSource); ok {
		return fs
	}
	return DefaultFontBook()
}
