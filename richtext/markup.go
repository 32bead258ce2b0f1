package richtext

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/net/html"

	"github.com/gogpu/sceneview"
)

// EntityFunc resolves a character entity name, without the leading '&' and
// trailing ';', to its text.
type EntityFunc func(name string) (string, bool)

// HTMLEntity resolves the HTML5 named entities and numeric references in
// decimal (#945) or hexadecimal (#x3B1) form.
func HTMLEntity(name string) (string, bool) {
	if r, ok := numericEntity(name); ok {
		return r, true
	}
	ref := "&" + name + ";"
	if s := html.UnescapeString(ref); s != ref {
		return s, true
	}
	return "", false
}

// EntityMap returns an EntityFunc backed by m. Numeric references are
// always resolved.
func EntityMap(m map[string]string) EntityFunc {
	return func(name string) (string, bool) {
		if r, ok := numericEntity(name); ok {
			return r, true
		}
		s, ok := m[name]
		return s, ok
	}
}

func numericEntity(name string) (string, bool) {
	if !strings.HasPrefix(name, "#") {
		return "", false
	}
	var (
		code int64
		err  error
	)
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		code, err = strconv.ParseInt(name[2:], 16, 32)
	} else {
		code, err = strconv.ParseInt(name[1:], 10, 32)
	}
	if err != nil || code < 0 {
		return "", false
	}
	return string(rune(code)), true
}

// tagAttributes parses key=value pairs separated by single spaces. Keys and
// values are lower-cased and one level of quotes is stripped.
func tagAttributes(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(tag, " ") {
		if !strings.Contains(part, "=") {
			continue
		}
		kv := strings.Split(part, "=")
		key := strings.ToLower(kv[0])
		value := strings.ToLower(kv[1])
		if len(value) >= 2 && (value[0] == '\'' && value[len(value)-1] == '\'' ||
			value[0] == '"' && value[len(value)-1] == '"') {
			value = value[1 : len(value)-1]
		}
		attrs[key] = value
	}
	return attrs
}

// awtColors are the named colors accepted by the font tag before falling
// back to the SVG color keywords.
var awtColors = map[string]color.NRGBA{
	"black":      {A: 255},
	"blue":       {B: 255, A: 255},
	"cyan":       {G: 255, B: 255, A: 255},
	"dark_gray":  {R: 64, G: 64, B: 64, A: 255},
	"gray":       {R: 128, G: 128, B: 128, A: 255},
	"green":      {G: 255, A: 255},
	"light_gray": {R: 192, G: 192, B: 192, A: 255},
	"magenta":    {R: 255, B: 255, A: 255},
	"orange":     {R: 255, G: 200, A: 255},
	"pink":       {R: 255, G: 175, B: 175, A: 255},
	"red":        {R: 255, A: 255},
	"white":      {R: 255, G: 255, B: 255, A: 255},
	"yellow":     {R: 255, G: 255, A: 255},
}

// namedColor resolves a color attribute: a basic name, an SVG keyword or
// #rrggbb.
func namedColor(name string) (color.NRGBA, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := awtColors[name]; ok {
		return c, true
	}
	if c, ok := colornames.Map[strings.ReplaceAll(name, "_", "")]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	if len(name) == 7 && name[0] == '#' {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil {
			return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
		}
	}
	return color.NRGBA{}, false
}

// derive returns the font selected by tag on top of prev.
func derive(prev sceneview.ColorFont, tag string) sceneview.ColorFont {
	f := prev
	switch {
	case tag == tagBold:
		f.Style |= sceneview.Bold
	case tag == tagItalic:
		f.Style |= sceneview.Italic
	case tag == tagSub || tag == tagSup:
		f.Size -= 2
	case strings.HasPrefix(tag, tagFont):
		attrs := tagAttributes(tag)
		if s, ok := attrs["size"]; ok {
			if size, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				f.Size = size
			}
		}
		if name, ok := attrs["color"]; ok {
			if c, ok := namedColor(name); ok {
				f.Color = c
			}
		}
	}
	return f
}
