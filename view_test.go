package sceneview

import "testing"

var (
	_ View = (*Line)(nil)
	_ View = (*Box)(nil)
	_ View = (*Ellipse)(nil)
	_ View = (*Polygon)(nil)
	_ View = (*Polyline)(nil)
	_ View = (*PathView)(nil)
	_ View = (*Figure)(nil)
	_ View = (*Text)(nil)
	_ View = (*HTML)(nil)
	_ View = (*Image)(nil)
	_ View = (*Composite)(nil)
	_ View = (*Arrow)(nil)
	_ View = (*Dummy)(nil)
)

// flagged is the part of Base promoted to every variant.
type flagged interface {
	IsActive() bool
	Model() any
}

func TestStateIsEmbeddedBase(t *testing.T) {
	tests := []struct {
		name string
		v    View
	}{
		{"line", NewLine(nil, Pt(0, 0), Pt(10, 10))},
		{"box", box(0, 0, 10, 10)},
		{"ellipse", NewEllipse(nil, nil, 0, 0, 10, 10)},
		{"polygon", NewPolygon(nil, nil, []int{0, 10, 0}, []int{0, 0, 10})},
		{"polyline", NewPolyline(nil, []int{0, 10}, []int{0, 10})},
		{"figure", NewFigure(nil, nil, []int{0, 10}, []int{0, 10}, []int{0, 0})},
		{"text", NewTextOrigin("a", DefaultFont(), FixedMetrics{Advance: 10, Ascent: 8, Descent: 2})},
		{"image", NewImage(nil, 0, 0, 10, 10)},
		{"composite", NewComposite()},
		{"arrow", NewArrow(nil, nil, Pt(0, 0), Pt(50, 0), TipNone, TipArrow)},
		{"dummy", NewDummy(nil, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.v.State()
			if s != tt.v.State() {
				t.Fatal("State returns a different pointer on each call")
			}
			s.SetActive(true)
			s.SetModel(tt.name)
			f, ok := tt.v.(flagged)
			if !ok {
				t.Fatalf("%T does not promote the Base accessors", tt.v)
			}
			if !f.IsActive() {
				t.Error("IsActive = false after State().SetActive(true)")
			}
			if got := f.Model(); got != tt.name {
				t.Errorf("Model = %v, want %q", got, tt.name)
			}
		})
	}
}

func TestRegisteredClassesHaveState(t *testing.T) {
	for _, class := range Classes() {
		factory, _ := lookupClass(class)
		v := factory()
		if v.State() == nil {
			t.Errorf("%s: State = nil", class)
			continue
		}
		if sx, sy := v.State().ScaleFactors(); sx != 1 || sy != 1 {
			t.Errorf("%s: ScaleFactors = %v, %v; want 1, 1", class, sx, sy)
		}
	}
}
