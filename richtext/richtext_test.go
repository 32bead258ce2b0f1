package richtext

import (
	"image/color"
	"testing"

	"github.com/gogpu/sceneview"
)

var fixed = sceneview.FixedMetrics{Advance: 10, Ascent: 8, Descent: 2}

// runs returns the text of every run, line by line.
func runs(t *testing.T, v *ComplexText) [][]string {
	t.Helper()
	var out [][]string
	for _, l := range v.Children() {
		line, ok := l.(*sceneview.Composite)
		if !ok {
			t.Fatalf("line is %T, want *sceneview.Composite", l)
		}
		var texts []string
		for _, r := range line.Children() {
			texts = append(texts, r.(*sceneview.Text).Text())
		}
		out = append(out, texts)
	}
	return out
}

func equalLines(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestLayoutRuns(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		maxChars int
		want     [][]string
	}{
		{"plain", "hello", 0, [][]string{{"hello"}}},
		{"break", "one<br>two", 0, [][]string{{"one"}, {"two"}}},
		{"bold run", "a <b>b</b> c", 0, [][]string{{"a ", "b", " c"}}},
		{"wrap at space", "hello world", 5, [][]string{{"hello"}, {"world"}}},
		{"wrap long word", "abcdefgh", 3, [][]string{{"abc"}, {"def"}, {"gh"}}},
		{"wrap at hyphen", "well-known fact", 6, [][]string{{"well"}, {"-known"}, {"fact"}}},
		{"entity", "a&lt;b", 0, [][]string{{"a", "<", "b"}}},
		{"numeric entity", "&#945;&#x3B2;", 0, [][]string{{"α", "β"}}},
		{"unknown entity", "&bogus;", 0, [][]string{{"&bogus;"}}},
		{"greek tag", "<alpha/>-helix", 0, [][]string{{"α-helix"}}},
		{"unknown tag kept", "x<blink>y", 0, [][]string{{"x", "blink", "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.markup, Options{MaxChars: tt.maxChars, Metrics: fixed})
			if got := runs(t, v); !equalLines(got, tt.want) {
				t.Errorf("runs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutGeometry(t *testing.T) {
	v := New("hello<br>abc", Options{Metrics: fixed})
	if got, want := v.Bounds(), sceneview.R(0, 0, 50, 20); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	second := v.At(1)
	if got, want := sceneview.Location(second), sceneview.Pt(0, 10); got != want {
		t.Errorf("second line at %v, want %v", got, want)
	}

	// Right aligned lines end at the origin.
	right := New("hello<br>abc", Options{Metrics: fixed, LineAlign: AlignRight})
	if got, want := sceneview.Location(right.At(0)), sceneview.Pt(-50, 0); got != want {
		t.Errorf("right aligned first line at %v, want %v", got, want)
	}
	if got, want := sceneview.Location(right.At(1)), sceneview.Pt(-30, 10); got != want {
		t.Errorf("right aligned second line at %v, want %v", got, want)
	}

	moved := New("x", Options{Metrics: fixed, Origin: sceneview.Pt(7, 9)})
	if got, want := sceneview.Location(moved), sceneview.Pt(7, 9); got != want {
		t.Errorf("origin = %v, want %v", got, want)
	}
}

func TestFontTags(t *testing.T) {
	v := New("<b>B</b><i>I</i><font color=blue size=20>F</font>N", Options{Metrics: fixed})
	line := v.At(0).(*sceneview.Composite)
	base := sceneview.DefaultFont()

	tests := []struct {
		i    int
		want sceneview.ColorFont
	}{
		{0, base.WithStyle(sceneview.Bold)},
		{1, base.WithStyle(sceneview.Italic)},
		{2, sceneview.NewColorFont(base.Name, base.Style, 20, color.NRGBA{B: 255, A: 255})},
		{3, base},
	}
	for _, tt := range tests {
		if got := line.At(tt.i).(*sceneview.Text).Font(); got != tt.want {
			t.Errorf("run %d font = %+v, want %+v", tt.i, got, tt.want)
		}
	}
}

func TestSubSupOffsets(t *testing.T) {
	v := New("H<sub>2</sub>O<sup>+</sup>", Options{Metrics: fixed})
	line := v.At(0).(*sceneview.Composite)
	y := func(i int) int { return line.At(i).Bounds().Y }

	if got, want := y(1)-y(0), 5; got != want {
		t.Errorf("sub offset = %d, want %d", got, want)
	}
	if got := y(2) - y(0); got != 0 {
		t.Errorf("after sub offset = %d, want 0", got)
	}
	if got, want := y(3)-y(0), -5; got != want {
		t.Errorf("sup offset = %d, want %d", got, want)
	}
	if got := line.At(1).(*sceneview.Text).Font().Size; got != 10 {
		t.Errorf("sub size = %d, want 10", got)
	}
}

func TestUnbalancedCloseKeepsBaseFont(t *testing.T) {
	v := New("</b></sub>x", Options{Metrics: fixed})
	got := v.At(0).(*sceneview.Composite).At(0).(*sceneview.Text).Font()
	if got != sceneview.DefaultFont() {
		t.Errorf("font = %+v, want default", got)
	}
}

func TestMaxWidth(t *testing.T) {
	// 20 characters at 10px each: 100px allows 100*20/200-2 = 8 characters.
	v := New("aaaa bbbb cccc dddd.", Options{MaxWidth: 100, Metrics: fixed})
	want := [][]string{{"aaaa"}, {"bbbb"}, {"cccc"}, {"dddd."}}
	if got := runs(t, v); !equalLines(got, want) {
		t.Errorf("runs = %q, want %q", got, want)
	}
	wide := New("short", Options{MaxWidth: 1000, Metrics: fixed})
	if wide.Len() != 1 {
		t.Errorf("lines = %d, want 1", wide.Len())
	}
}

func TestEntityMap(t *testing.T) {
	v := New("&deg;&#65;&nbsp;", Options{Metrics: fixed, Entity: EntityMap(map[string]string{"deg": "°"})})
	want := [][]string{{"°", "A", "&nbsp;"}}
	if got := runs(t, v); !equalLines(got, want) {
		t.Errorf("runs = %q, want %q", got, want)
	}
}

func TestNamedColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"green", color.NRGBA{G: 255, A: 255}, true},
		{"DARK_GRAY", color.NRGBA{R: 64, G: 64, B: 64, A: 255}, true},
		{"teal", color.NRGBA{G: 128, B: 128, A: 255}, true},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, true},
		{"nocolor", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := namedColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("namedColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	v := New("a<br><b>b</b>", Options{Metrics: fixed})
	var c sceneview.Codec
	data, err := c.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := c.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := got.(*ComplexText); !ok {
		t.Fatalf("decoded %T, want *ComplexText", got)
	}
	if !got.Equal(v) {
		t.Error("decoded view not equal to original")
	}
}
