package sceneview

import (
	"encoding/json"
	"slices"
	"testing"
)

var fixed = FixedMetrics{Advance: 10, Ascent: 8, Descent: 2}

func TestTextLayout(t *testing.T) {
	tests := []struct {
		name      string
		alignment int
		wantRect  Rect
		wantBase  int
	}{
		{"left baseline", AlignLeft | AlignBaseline, R(100, 42, 40, 10), 50},
		{"right baseline", AlignRight | AlignBaseline, R(60, 42, 40, 10), 50},
		{"center baseline", AlignCenter | AlignBaseline, R(80, 42, 40, 10), 50},
		{"left top", AlignLeft | AlignTop, R(100, 50, 40, 10), 58},
		{"left bottom", AlignLeft | AlignBottom, R(100, 40, 40, 10), 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewText("abcd", Pt(100, 50), tt.alignment, DefaultFont(), fixed)
			if got := v.Bounds(); got != tt.wantRect {
				t.Errorf("Bounds = %v, want %v", got, tt.wantRect)
			}
			if got := v.Baseline(); got != tt.wantBase {
				t.Errorf("Baseline = %d, want %d", got, tt.wantBase)
			}
		})
	}
}

func TestTextPos(t *testing.T) {
	v := NewTextOrigin("hello", DefaultFont(), fixed)
	tests := []struct {
		from, to int
		want     Rect
	}{
		{0, 2, R(0, -8, 20, 10)},
		{2, 5, R(21, -8, 30, 10)},
		{4, 99, R(41, -8, 10, 10)},
		{-3, 0, R(0, -8, 0, 10)},
	}
	for _, tt := range tests {
		if got := v.TextPos(tt.from, tt.to); got != tt.want {
			t.Errorf("TextPos(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTextScaleKeepsOrigin(t *testing.T) {
	v := NewText("ab", Pt(10, 20), AlignLeft, DefaultFont(), fixed)
	v.Scale(2, 3)
	if got, want := v.Bounds(), R(10, 12, 40, 30); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	if !v.Intersects(R(10, 12, 5, 5)) || v.Intersects(R(35, 12, 5, 5)) {
		t.Error("Intersects should use the unscaled box")
	}
}

func TestTextMove(t *testing.T) {
	v := NewTextOrigin("ab", DefaultFont(), fixed)
	v.Move(5, 7)
	if v.Baseline() != 7 || v.Bounds() != R(5, -1, 20, 10) {
		t.Errorf("after Move baseline=%d bounds=%v", v.Baseline(), v.Bounds())
	}
}

func TestHTMLLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"plain", []string{"plain"}},
		{"a<br>b", []string{"a", "b"}},
		{"<b>bold</b> text", []string{"bold text"}},
		{"<p>one</p><p>two</p>", []string{"one", "two"}},
		{"x &amp; y", []string{"x & y"}},
	}
	for _, tt := range tests {
		if got := htmlLines(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("htmlLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHTMLSize(t *testing.T) {
	v := NewHTML("ab<br>abcd", DefaultFont(), Pt(1, 2), fixed)
	if got, want := v.Bounds(), R(1, 2, 40, 20); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	big := NewHTMLSized("ab", DefaultFont(), Pt(0, 0), 100, 50, fixed)
	if got, want := big.Bounds(), R(0, 0, 100, 50); got != want {
		t.Errorf("sized Bounds = %v, want %v", got, want)
	}
}

func TestColorFontJSON(t *testing.T) {
	f := NewColorFont("Helvetica", Bold|Italic, 18, Red)
	obj := f.EncodeJSON()
	data := mustJSON(t, obj)
	fs, err := ParseFields(data)
	if err != nil {
		t.Fatalf("ParseFields: %v", err)
	}
	if got := DecodeColorFont(fs); got != f {
		t.Errorf("DecodeColorFont = %+v, want %+v", got, f)
	}
}

func TestFixedMetricsRunes(t *testing.T) {
	if got := fixed.StringWidth(DefaultFont(), "héllo"); got != 50 {
		t.Errorf("StringWidth = %d, want 50", got)
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return data
}
