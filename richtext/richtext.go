// Package richtext lays out a small HTML subset as a tree of text runs.
//
// The markup understands b, i, br, font (size and color attributes), sub,
// sup and the Greek letter tags alpha/, beta/, gamma/ and delta/. Character
// entities are resolved through Options.Entity; unknown tags are kept as
// text. Lines wrap at a maximum character count, breaking after spaces and
// hyphens where possible.
//
// The result is a ComplexText view: a composite of line composites, each
// holding sceneview Text runs placed right of each other.
package richtext

import (
	"strings"
	"unicode/utf8"

	"github.com/gogpu/sceneview"
)

// Line alignment.
const (
	AlignLeft   = sceneview.X_LL
	AlignCenter = sceneview.X_CC
	AlignRight  = sceneview.X_RR
)

const (
	tagBold   = "b"
	tagItalic = "i"
	tagBreak  = "br"
	tagFont   = "font"
	tagSub    = "sub"
	tagSup    = "sup"
)

var greek = map[string]rune{
	"alpha/": 'α',
	"beta/":  'β',
	"gamma/": 'γ',
	"delta/": 'δ',
}

// Class is the serialization tag of ComplexText.
const Class = "ComplexTextView"

func init() {
	sceneview.Register(Class, func() sceneview.View {
		return &ComplexText{Composite: *sceneview.NewComposite()}
	})
}

// Options configures layout.
type Options struct {
	// Font is the base font. The zero value means sceneview.DefaultFont.
	Font sceneview.ColorFont

	// Origin offsets the first line.
	Origin sceneview.Point

	// Alignment is the sceneview text alignment of each run.
	Alignment int

	// LineAlign is AlignLeft, AlignCenter or AlignRight; zero means left.
	LineAlign int

	// MaxChars is the wrap width in characters. Zero disables wrapping
	// unless MaxWidth is set.
	MaxChars int

	// MaxWidth is a wrap width in pixels, converted to a character count
	// from the measured width of the whole markup.
	MaxWidth int

	// Metrics measures runs. Nil uses sceneview.DefaultFontBook.
	Metrics sceneview.Metrics

	// Entity resolves character entities. Nil uses HTMLEntity.
	Entity EntityFunc
}

// ComplexText is laid out markup. It encodes as a plain composite of its
// lines.
type ComplexText struct {
	sceneview.Composite
}

// Class implements sceneview.View.
func (t *ComplexText) Class() string { return Class }

// Equal implements sceneview.View.
func (t *ComplexText) Equal(other sceneview.View) bool {
	o, ok := other.(*ComplexText)
	return ok && t.Composite.Equal(&o.Composite)
}

// New lays out markup s.
func New(s string, opts Options) *ComplexText {
	if opts.Font == (sceneview.ColorFont{}) {
		opts.Font = sceneview.DefaultFont()
	}
	if opts.LineAlign == 0 {
		opts.LineAlign = AlignLeft
	}
	if opts.Entity == nil {
		opts.Entity = HTMLEntity
	}
	n := utf8.RuneCountInString(s)
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = n
		if opts.MaxWidth > 0 {
			maxChars = charsForWidth(s, n, opts)
		}
	}

	t := &ComplexText{Composite: *sceneview.NewComposite()}
	p := &parser{
		out:     t,
		opts:    opts,
		fonts:   []sceneview.ColorFont{opts.Font},
		line:    sceneview.NewComposite(),
		offset:  opts.Origin,
		maxLine: max(maxChars, 1),
	}
	p.parse(s)
	sceneview.Logger().Debug("richtext: layout", "lines", t.Len(), "maxChars", p.maxLine)
	return t
}

// charsForWidth converts a pixel width to a character count using the
// average advance of the base font over the whole markup.
func charsForWidth(s string, n int, opts Options) int {
	m := opts.Metrics
	if m == nil {
		m = sceneview.DefaultFontBook()
	}
	w := m.StringWidth(opts.Font, s)
	if w <= opts.MaxWidth+2 || w == 0 {
		return n
	}
	return max(4, opts.MaxWidth*n/w-2)
}

type parser struct {
	out     *ComplexText
	opts    Options
	fonts   []sceneview.ColorFont
	buf     strings.Builder
	line    *sceneview.Composite
	lineLen int
	maxLine int
	offset  sceneview.Point
	vOffset int
}

func (p *parser) font() sceneview.ColorFont {
	return p.fonts[len(p.fonts)-1]
}

func (p *parser) push(f sceneview.ColorFont) {
	p.fonts = append(p.fonts, f)
}

// pop removes the top font, keeping the base font.
func (p *parser) pop() (sceneview.ColorFont, bool) {
	if len(p.fonts) <= 1 {
		return sceneview.ColorFont{}, false
	}
	f := p.font()
	p.fonts = p.fonts[:len(p.fonts)-1]
	return f, true
}

func (p *parser) flush() {
	if p.buf.Len() > 0 {
		p.text(p.buf.String())
	}
	p.buf.Reset()
}

func (p *parser) parse(s string) {
	inTag, inEntity := false, false
	for _, r := range s {
		switch {
		case r == '&' && !inEntity:
			p.flush()
			inEntity = true
		case r == ';' && inEntity:
			name := p.buf.String()
			p.buf.Reset()
			if v, ok := p.opts.Entity(name); ok {
				p.text(v)
			} else {
				p.text("&" + name + ";")
			}
			inEntity = false
		case r == '<' && !inTag:
			p.flush()
			inTag = true
		case r == '>' && inTag:
			tag := strings.ToLower(p.buf.String())
			p.buf.Reset()
			if tag != "" {
				p.tag(tag)
			}
			inTag = false
		default:
			p.buf.WriteRune(r)
		}
	}
	p.flush()
	p.out.AddArranged(p.line, p.opts.LineAlign|sceneview.Y_BT, p.offset)
}

func (p *parser) tag(tag string) {
	switch {
	case tag == tagBold || tag == tagItalic:
		p.push(derive(p.font(), tag))
	case tag == tagBreak:
		p.newLine()
	case strings.HasPrefix(tag, tagFont):
		p.push(derive(p.font(), tag))
	case tag == "/"+tagBold || tag == "/"+tagItalic || strings.HasPrefix(tag, "/"+tagFont):
		p.pop()
	case tag == tagSub:
		f := derive(p.font(), tagSub)
		p.push(f)
		p.vOffset += f.Size / 2
	case tag == "/"+tagSub:
		if f, ok := p.pop(); ok {
			p.vOffset -= f.Size / 2
		}
	case tag == tagSup:
		f := derive(p.font(), tagSup)
		p.push(f)
		p.vOffset -= f.Size / 2
	case tag == "/"+tagSup:
		if f, ok := p.pop(); ok {
			p.vOffset += f.Size / 2
		}
	default:
		if r, ok := greek[tag]; ok {
			p.buf.WriteRune(r)
			return
		}
		p.text(tag)
	}
}

// newLine stacks the current line below the previous ones and starts an
// empty one.
func (p *parser) newLine() {
	p.out.AddArranged(p.line, p.opts.LineAlign|sceneview.Y_BT, p.offset)
	p.offset = sceneview.Point{}
	p.line = sceneview.NewComposite()
	p.lineLen = 0
}

func (p *parser) run(s string) {
	v := sceneview.NewText(s, sceneview.Point{}, p.opts.Alignment, p.font(), p.opts.Metrics)
	p.line.AddArranged(v, sceneview.X_RL, sceneview.Pt(0, p.vOffset))
}

// text adds s to the current line, wrapping at maxLine characters.
func (p *parser) text(s string) {
	part := []rune(s)
	for p.lineLen+len(part) > p.maxLine {
		pos := -1
		for tmp := splitter(part, 0); tmp != -1; tmp = splitter(part, tmp+1) {
			if p.lineLen+tmp > p.maxLine {
				break
			}
			pos = tmp
		}
		switch {
		case pos > 0:
			p.run(string(part[:pos]))
			part = part[pos:]
		case p.lineLen == 0:
			p.run(string(part[:p.maxLine]))
			part = part[p.maxLine:]
		}
		p.newLine()
		for len(part) > 0 && part[0] == ' ' {
			part = part[1:]
		}
	}
	if len(part) > 0 {
		p.run(string(part))
		p.lineLen += len(part)
	}
}

// splitter returns the index of the first space or hyphen at or after
// start, or -1.
func splitter(s []rune, start int) int {
	for i := start; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '-' {
			return i
		}
	}
	return -1
}
