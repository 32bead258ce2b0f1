package sceneview

// hitDelta is the half size of the hit-test rectangle.
const hitDelta = 3

// HitRect returns the hit-test rectangle around p.
func HitRect(p Point) Rect {
	return Rect{X: p.X - hitDelta, Y: p.Y - hitDelta, Width: 2 * hitDelta, Height: 2 * hitDelta}
}

// DeepestActive returns the innermost active view under p, or nil.
func (c *Composite) DeepestActive(p Point) View {
	return c.DeepestActiveFiltered(p, nil, nil)
}

// DeepestActiveFiltered is DeepestActive restricted to views whose model is
// not in ignore and, when accept is non-nil, is accepted by it.
//
// Children are visited topmost first. A view becomes a candidate when it is
// active, meets the hit rectangle and lies inside the current best candidate,
// so siblings never replace each other unless nested. Among the candidates the
// highest SelectionPriority wins, then the smallest area. The composite
// itself is returned when it is active and nothing better is found.
func (c *Composite) DeepestActiveFiltered(p Point, ignore []any, accept func(model any) bool) View {
	t := tracer{hit: HitRect(p), ignore: ignore, accept: accept}
	var best View
	if c.IsActive() {
		best = c
	}
	return t.trace(c, best)
}

type tracer struct {
	hit    Rect
	ignore []any
	accept func(any) bool
}

func (t *tracer) eligible(v View, maxView View) bool {
	b := v.State()
	if !b.IsActive() || !v.Intersects(t.hit) {
		return false
	}
	if maxView != nil && !maxView.Bounds().Contains(v.Bounds()) {
		return false
	}
	if t.accept != nil && !t.accept(b.model) {
		return false
	}
	for _, m := range t.ignore {
		if m == b.model {
			return false
		}
	}
	return true
}

func (t *tracer) trace(c Container, maxView View) View {
	var selected []View
	children := c.Children()
	for i := len(children) - 1; i >= 0; i-- {
		v := children[i]
		cur := maxView
		if t.eligible(v, maxView) {
			cur = v
		}
		if sub, ok := v.(Container); ok {
			if found := t.trace(sub, cur); found != nil {
				cur = found
			}
		}
		if cur != nil && cur != maxView {
			selected = append(selected, cur)
		}
	}
	if len(selected) == 0 {
		return maxView
	}

	result := selected[0]
	best := result.SelectionPriority(t.hit)
	area := result.Bounds().Area()
	for _, v := range selected[1:] {
		p := v.SelectionPriority(t.hit)
		a := v.Bounds().Area()
		switch {
		case p > best:
			result, best, area = v, p, a
		case p == best && a < area:
			result, area = v, a
		}
	}
	Logger().Debug("sceneview: hit", "class", result.Class(), "candidates", len(selected))
	return result
}
