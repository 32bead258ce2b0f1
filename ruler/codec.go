package ruler

import "github.com/gogpu/sceneview"

// EncodeJSON writes the layout inputs. The step is stored as resolved, so a
// decoded ruler keeps its ticks even when measured with other fonts.
func (r *Ruler) EncodeJSON(*sceneview.Codec) sceneview.Object {
	lo, hi := r.min, r.max
	if r.reversed {
		lo, hi = hi, lo
	}
	obj := sceneview.Object{
		"rulerType":     r.typ,
		"x":             r.anchor.X,
		"y":             r.anchor.Y,
		"scale":         r.scale,
		"min":           lo,
		"max":           hi,
		"step":          r.step,
		"ticks":         r.ticks,
		"density":       r.opts.density(),
		"majorFont":     r.opts.MajorFont.EncodeJSON(),
		"minorFont":     r.opts.MinorFont.EncodeJSON(),
		"majorDecimals": r.opts.MajorDecimals,
		"minorDecimals": r.opts.MinorDecimals,
		"majorTick":     r.opts.MajorTick,
		"minorTick":     r.opts.MinorTick,
		"textOffsetX":   r.opts.TextOffset.X,
		"textOffsetY":   r.opts.TextOffset.Y,
	}
	if r.opts.AxisPen != nil {
		obj["axisPen"] = r.opts.AxisPen.EncodeJSON()
	}
	if r.opts.TicksPen != nil {
		obj["ticksPen"] = r.opts.TicksPen.EncodeJSON()
	}
	return obj
}

// DecodeJSON restores the ruler and lays it out again with the default font
// book. Malformed members keep the DefaultOptions values.
func (r *Ruler) DecodeJSON(_ *sceneview.Codec, f sceneview.Fields) {
	opts := DefaultOptions(sceneview.DefaultFont())
	if sub, ok := f.Object("majorFont"); ok {
		opts.MajorFont = sceneview.DecodeColorFont(sub)
	}
	if sub, ok := f.Object("minorFont"); ok {
		opts.MinorFont = sceneview.DecodeColorFont(sub)
	}
	if sub, ok := f.Object("axisPen"); ok {
		opts.AxisPen = sceneview.DecodePen(sub)
	}
	if sub, ok := f.Object("ticksPen"); ok {
		opts.TicksPen = sceneview.DecodePen(sub)
	}
	f.Int("majorDecimals", &opts.MajorDecimals)
	f.Int("minorDecimals", &opts.MinorDecimals)
	f.Int("majorTick", &opts.MajorTick)
	f.Int("minorTick", &opts.MinorTick)
	f.Int("textOffsetX", &opts.TextOffset.X)
	f.Int("textOffsetY", &opts.TextOffset.Y)
	f.Float("step", &opts.Step)
	f.Int("ticks", &opts.Ticks)
	f.Float("density", &opts.Density)

	f.Int("rulerType", &r.typ)
	f.Int("x", &r.anchor.X)
	f.Int("y", &r.anchor.Y)
	f.Float("scale", &r.scale)
	f.Float("min", &r.min)
	f.Float("max", &r.max)
	if r.scale <= 0 {
		r.scale = 1
	}
	r.opts = opts
	r.reversed = false
	r.layout()
}
