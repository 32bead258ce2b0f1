// Package ruler draws axis rulers with major and minor ticks and labels.
//
// Layout runs in two phases. New measures the ruler and fixes its bounds
// without painting, so that a diagram can reserve space before the final
// position is known. Paint then walks the ticks from the first major tick
// below the visible range to one step past its end, skipping any label
// that would overlap the previously drawn one.
package ruler

import (
	"math"

	"github.com/gogpu/sceneview"
)

// Ruler type bits. The UP and LEFT variants share a bit, as do DOWN and
// RIGHT: vertical rulers read UP as left and DOWN as right.
const (
	Horizontal     = 1
	Gene           = 2
	TicksMajorUp   = 4
	TicksMajorDown = 8
	TicksMinorUp   = 16
	TicksMinorDown = 32
	LabelsMajor    = 64
	LabelsMajorUp  = 128
	LabelsMinor    = 256
	LabelsMinorUp  = 512
)

// Class is the serialization tag of Ruler.
const Class = "Ruler"

func init() {
	sceneview.Register(Class, func() sceneview.View {
		return &Ruler{Composite: *sceneview.NewComposite(), scale: 1}
	})
}

// Ruler is an axis from min to max drawn scale pixels per unit, starting
// at the anchor point. Horizontal rulers grow to the right and vertical
// ones upwards. In Gene mode there is no zero position: the unit after -1
// is 1.
//
// Ruler has no children; it draws its ticks and labels directly.
type Ruler struct {
	sceneview.Composite

	typ      int
	anchor   sceneview.Point
	scale    float64
	min, max float64
	reversed bool
	step     float64
	ticks    int
	opts     Options
	rect     sceneview.Rect
}

// New lays out a ruler. When min > max the axis is reversed: values
// decrease away from the anchor.
func New(typ int, anchor sceneview.Point, scale, min, max float64, opts Options) *Ruler {
	r := &Ruler{
		Composite: *sceneview.NewComposite(),
		typ:       typ,
		anchor:    anchor,
		scale:     scale,
		min:       min,
		max:       max,
		opts:      opts,
	}
	r.layout()
	return r
}

func (r *Ruler) layout() {
	if r.min > r.max {
		r.min, r.max = r.max, r.min
		r.reversed = true
	}
	if r.opts.Step > 0 {
		r.step, r.ticks = r.opts.Step, max(r.opts.Ticks, 0)
	} else {
		length := r.max - r.min
		intervals := int(length*r.scale/float64(r.labelMax()*2)) + 1
		r.step, r.ticks = chooseStep(length, intervals)
	}
	r.rect = r.measure()
	sceneview.Logger().Debug("ruler: layout", "step", r.step, "ticks", r.ticks, "bounds", r.rect)
}

// labelMax is the largest label extent along the axis.
func (r *Ruler) labelMax() int {
	m := r.opts.metrics()
	var size int
	if r.horizontal() {
		lo := FormatValue(r.min, r.opts.MajorDecimals)
		hi := FormatValue(r.max, r.opts.MinorDecimals)
		for _, f := range []sceneview.ColorFont{r.opts.MajorFont, r.opts.MinorFont} {
			size = max(size, m.StringWidth(f, lo), m.StringWidth(f, hi))
		}
	} else {
		size = max(m.Metrics(r.opts.MajorFont).Height, m.Metrics(r.opts.MinorFont).Height)
	}
	return max(size, 1)
}

func (r *Ruler) horizontal() bool { return r.typ&Horizontal != 0 }

// Type returns the type bits.
func (r *Ruler) Type() int { return r.typ }

// Range returns the axis values in ascending order.
func (r *Ruler) Range() (min, max float64) { return r.min, r.max }

// IsReversed reports whether values decrease away from the anchor.
func (r *Ruler) IsReversed() bool { return r.reversed }

// Step returns the distance between major ticks.
func (r *Ruler) Step() float64 { return r.step }

// Ticks returns the number of minor ticks between two major ticks.
func (r *Ruler) Ticks() int { return r.ticks }

// Anchor returns the position of the first axis end.
func (r *Ruler) Anchor() sceneview.Point { return r.anchor }

// Options returns the layout options.
func (r *Ruler) Options() Options { return r.opts }

// Position returns the pixel offset of v from the anchor along the axis.
func (r *Ruler) Position(v float64) int {
	shift := r.scale * (v - r.min)
	if r.reversed {
		shift = r.scale * (r.max - v)
	}
	// Gene mode has no zero: positive values close the gap in either
	// direction.
	if r.typ&Gene != 0 && v > 0 && r.min < 0 {
		shift -= r.scale
	}
	return int(shift)
}

// point returns the axis point for the pixel offset pos.
func (r *Ruler) point(pos int) sceneview.Point {
	if r.horizontal() {
		return sceneview.Pt(r.anchor.X+pos, r.anchor.Y)
	}
	return sceneview.Pt(r.anchor.X, r.anchor.Y-pos)
}

// axisLength is the axis length in pixels, one unit shorter in Gene mode
// when the range spans zero.
func (r *Ruler) axisLength(lo, hi float64) int {
	n := int((hi - lo) * r.scale)
	if r.typ&Gene != 0 && lo < 0 && hi > 0 {
		n = int(float64(n) - r.scale)
	}
	return n
}

// band is the extent of one tick kind across the axis.
type band struct {
	up, down int
}

// bands returns the major and minor tick extents across the axis.
func (r *Ruler) bands() (major, minor band) {
	base := r.anchor.Y
	if !r.horizontal() {
		base = r.anchor.X
	}
	major = band{base, base}
	minor = band{base, base}
	if r.typ&TicksMajorUp != 0 {
		major.up -= r.opts.MajorTick
	}
	if r.typ&TicksMajorDown != 0 {
		major.down += r.opts.MajorTick
	}
	if r.typ&TicksMinorUp != 0 {
		minor.up -= r.opts.MinorTick
	}
	if r.typ&TicksMinorDown != 0 {
		minor.down += r.opts.MinorTick
	}
	return major, minor
}

// tier describes one pass over the ticks: major or minor.
type tier struct {
	step     float64
	band     band
	font     sceneview.ColorFont
	decimals int
	ticks    bool
	labels   bool
	labelsUp bool
}

func (r *Ruler) tiers() []tier {
	major, minor := r.bands()
	var out []tier
	if r.typ&(TicksMajorUp|TicksMajorDown|LabelsMajor) != 0 {
		out = append(out, tier{
			step:     r.step,
			band:     major,
			font:     r.opts.MajorFont,
			decimals: r.opts.MajorDecimals,
			ticks:    r.typ&(TicksMajorUp|TicksMajorDown) != 0,
			labels:   r.typ&LabelsMajor != 0,
			labelsUp: r.typ&LabelsMajorUp != 0,
		})
	}
	if r.typ&(TicksMinorUp|TicksMinorDown|LabelsMinor) != 0 {
		out = append(out, tier{
			step:     r.step / float64(r.ticks+1),
			band:     minor,
			font:     r.opts.MinorFont,
			decimals: r.opts.MinorDecimals,
			ticks:    r.typ&(TicksMinorUp|TicksMinorDown) != 0,
			labels:   r.typ&LabelsMinor != 0,
			labelsUp: r.typ&LabelsMinorUp != 0,
		})
	}
	return out
}

// tickLine returns the tick segment at pixel offset pos.
func (r *Ruler) tickLine(b band, pos int) *sceneview.Line {
	p := r.point(pos)
	if r.horizontal() {
		return sceneview.NewLine(r.opts.TicksPen, sceneview.Pt(p.X, b.up), sceneview.Pt(p.X, b.down))
	}
	return sceneview.NewLine(r.opts.TicksPen, sceneview.Pt(b.up, p.Y), sceneview.Pt(b.down, p.Y))
}

// labelAt places label at pixel offset pos. The returned point is the left
// end of the baseline.
func (r *Ruler) labelAt(t tier, label string, pos int) sceneview.Point {
	m := r.opts.metrics()
	fm := m.Metrics(t.font)
	w := m.StringWidth(t.font, label)
	p := r.point(pos)
	if r.horizontal() {
		y := t.band.down + fm.Ascent + r.opts.TextOffset.Y
		if t.labelsUp {
			y = t.band.up - fm.Descent - r.opts.TextOffset.Y
		}
		return sceneview.Pt(p.X-w/2, y)
	}
	x := t.band.down + r.opts.TextOffset.X
	if t.labelsUp {
		x = t.band.up - w - r.opts.TextOffset.X
	}
	return sceneview.Pt(x, p.Y)
}

func (r *Ruler) label(t tier, v float64) string {
	if r.opts.density() < 0.01 {
		return megabaseLabel(v, t.decimals)
	}
	return FormatValue(v, t.decimals)
}

func (r *Ruler) text(t tier, label string, pos int) *sceneview.Text {
	return sceneview.NewText(label, r.labelAt(t, label, pos), sceneview.AlignLeft|sceneview.AlignBaseline, t.font, r.opts.metrics())
}

// measure computes the bounds without painting: the axis plus the ticks
// and labels at both ends of the range.
func (r *Ruler) measure() sceneview.Rect {
	rect := sceneview.NewLine(r.opts.AxisPen, r.anchor, r.point(r.axisLength(r.min, r.max))).Bounds()
	for _, t := range r.tiers() {
		for _, v := range []float64{r.min, r.max} {
			if r.typ&Gene != 0 && v == 0 {
				continue
			}
			pos := r.Position(v)
			if t.ticks {
				rect = rect.Union(r.tickLine(t.band, pos).Bounds())
			}
			if t.labels {
				rect = rect.Union(r.text(t, r.label(t, v), pos).Bounds())
			}
		}
	}
	return rect
}

// Class implements sceneview.View.
func (r *Ruler) Class() string { return Class }

// Bounds returns the rectangle computed at layout.
func (r *Ruler) Bounds() sceneview.Rect { return r.rect }

// Move shifts the ruler.
func (r *Ruler) Move(dx, dy int) {
	r.rect.X += dx
	r.rect.Y += dy
	r.anchor.X += dx
	r.anchor.Y += dy
}

// Intersects reports whether the visible ruler bounds meet q.
func (r *Ruler) Intersects(q sceneview.Rect) bool {
	return r.IsVisible() && r.rect.Intersects(q)
}

// SelectionPriority implements sceneview.View.
func (r *Ruler) SelectionPriority(sceneview.Rect) int { return 0 }

// Equal compares the envelope, the axis and the options.
func (r *Ruler) Equal(other sceneview.View) bool {
	o, ok := other.(*Ruler)
	if !ok {
		return false
	}
	return r.EqualBase(o.State()) && r.typ == o.typ && r.anchor == o.anchor &&
		r.scale == o.scale && r.min == o.min && r.max == o.max &&
		r.reversed == o.reversed && r.step == o.step && r.ticks == o.ticks &&
		r.opts.equal(o.opts)
}

// visibleRange narrows [min, max] to the values inside clip, widened by a
// step on each side.
func (r *Ruler) visibleRange(clip sceneview.Rect) (lo, hi float64) {
	a, b := float64(clip.X-r.anchor.X), float64(clip.Right()-r.anchor.X)
	if !r.horizontal() {
		a, b = float64(r.anchor.Y-clip.Bottom()), float64(r.anchor.Y-clip.Y)
	}
	va, vb := r.min+a/r.scale, r.min+b/r.scale
	if r.reversed {
		va, vb = r.max-b/r.scale, r.max-a/r.scale
	}
	lo = math.Max(r.min, va-r.step)
	hi = math.Min(r.max, vb+r.step)
	return lo, hi
}
