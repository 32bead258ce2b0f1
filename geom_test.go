package sceneview

import "testing"

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"disjoint", R(0, 0, 10, 10), R(20, 5, 5, 5), R(0, 0, 25, 10)},
		{"nested", R(0, 0, 100, 100), R(10, 10, 5, 5), R(0, 0, 100, 100)},
		{"negative coordinates", R(-10, -10, 5, 5), R(0, 0, 5, 5), R(-10, -10, 15, 15)},
		{"zero size keeps position", R(50, 50, 0, 0), R(0, 0, 10, 10), R(0, 0, 50, 50)},
		{"negative size ignored", R(0, 0, -1, -1), R(3, 4, 5, 6), R(3, 4, 5, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), true},
		{"touching edges", R(0, 0, 10, 10), R(10, 0, 10, 10), false},
		{"inside", R(0, 0, 10, 10), R(2, 2, 2, 2), true},
		{"empty", R(0, 0, 10, 10), R(2, 2, 0, 0), false},
		{"apart", R(0, 0, 10, 10), R(20, 20, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	outer := R(0, 0, 100, 100)
	if !outer.Contains(R(10, 10, 10, 10)) {
		t.Error("Contains(inner) = false, want true")
	}
	if !outer.Contains(outer) {
		t.Error("Contains(self) = false, want true")
	}
	if outer.Contains(R(90, 90, 20, 20)) {
		t.Error("Contains(overhanging) = true, want false")
	}
	if !outer.Contains(R(5, 5, 0, 0)) {
		t.Error("Contains(zero size inside) = false, want true")
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := R(0, 0, 10, 10)
	if !r.ContainsPoint(0, 0) {
		t.Error("ContainsPoint(0,0) = false, want true")
	}
	if r.ContainsPoint(10, 5) {
		t.Error("ContainsPoint(10,5) = true, want false (right edge exclusive)")
	}
}

func TestRectIntersect(t *testing.T) {
	if got, want := R(0, 0, 10, 10).Intersect(R(5, 5, 10, 10)), R(5, 5, 5, 5); got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if got := R(0, 0, 10, 10).Intersect(R(20, 20, 1, 1)); got != (Rect{}) {
		t.Errorf("Intersect(apart) = %v, want zero", got)
	}
}

func TestBoundsOf(t *testing.T) {
	if got, want := boundsOf(0.5, 1.2, 9.1, 9.9), R(0, 1, 10, 9); got != want {
		t.Errorf("boundsOf = %v, want %v", got, want)
	}
}

func TestRectArea(t *testing.T) {
	if got := R(0, 0, 30000, 30000).Area(); got != 900000000 {
		t.Errorf("Area = %d, want 900000000", got)
	}
	if got := R(0, 0, -5, 10).Area(); got != 0 {
		t.Errorf("Area(negative) = %d, want 0", got)
	}
}
