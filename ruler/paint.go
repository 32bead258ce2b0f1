package ruler

import (
	"math"

	"github.com/gogpu/sceneview"
)

// Paint draws the axis, then the major and the minor ticks and labels.
// Only the part of the axis inside the canvas clip is walked.
func (r *Ruler) Paint(c sceneview.Canvas) {
	if !r.IsVisible() {
		return
	}
	lo, hi := r.min, r.max
	if clip, ok := c.ClipBounds(); ok {
		if !r.rect.Intersects(clip) {
			return
		}
		lo, hi = r.visibleRange(clip)
	}
	from := r.Position(lo)
	if r.reversed {
		from = r.Position(hi)
	}
	sceneview.NewLine(r.opts.AxisPen, r.point(from), r.point(from+r.axisLength(lo, hi))).Paint(c)

	for _, t := range r.tiers() {
		r.paintTier(c, t, lo, hi)
	}
}

// paintTier walks from the major tick at or below lo to one step past hi.
// Values outside [lo, hi] are clamped to the ends, zero is skipped in Gene
// mode, and a label that overlaps the last drawn label is dropped together
// with its tick.
func (r *Ruler) paintTier(c sceneview.Canvas, t tier, lo, hi float64) {
	m := r.opts.metrics()
	pad := m.StringWidth(t.font, "0") / 2
	height := m.Metrics(t.font).Height

	var last sceneview.Rect
	drawn := 0
	for cur := r.step * math.Floor(lo/r.step); cur <= hi+t.step+1; cur += t.step {
		v := cur
		switch {
		case cur <= lo:
			v = lo
		case cur > hi:
			v = hi
		}
		if r.typ&Gene != 0 && v == 0 {
			continue
		}
		pos := r.Position(v)
		if t.labels {
			label := r.label(t, v)
			at := r.labelAt(t, label, pos)
			box := sceneview.R(at.X, at.Y, m.StringWidth(t.font, label)+pad, height)
			if drawn > 0 && last.Intersects(box) {
				continue
			}
			sceneview.NewText(label, at, sceneview.AlignLeft|sceneview.AlignBaseline, t.font, m).Paint(c)
			last = box
			drawn++
		}
		if t.ticks {
			r.tickLine(t.band, pos).Paint(c)
		}
	}
}
