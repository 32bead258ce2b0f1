package ruler

import "github.com/gogpu/sceneview"

// Options holds the pens, fonts and sizes used to lay out and paint a
// ruler.
type Options struct {
	MajorFont sceneview.ColorFont
	MinorFont sceneview.ColorFont

	// MajorDecimals and MinorDecimals bound the fractional digits of major
	// and minor labels.
	MajorDecimals int
	MinorDecimals int

	AxisPen  *sceneview.Pen
	TicksPen *sceneview.Pen

	// MajorTick and MinorTick are the tick lengths on each requested side
	// of the axis.
	MajorTick int
	MinorTick int

	// TextOffset is the gap between ticks and labels: X for vertical
	// rulers, Y for horizontal ones.
	TextOffset sceneview.Point

	// Step is the distance between major ticks in ruler units. Zero picks
	// a step from the label size.
	Step float64

	// Ticks is the number of minor ticks between two major ticks. It is
	// only used with an explicit Step.
	Ticks int

	// Density is pixels per unit. Below 0.01 labels switch to the megabase
	// form ("1.25Mb"). Zero means 1.
	Density float64

	// Metrics measures labels. Nil uses sceneview.DefaultFontBook.
	Metrics sceneview.Metrics
}

// DefaultOptions returns options with font for both label kinds, black
// one pixel pens, 10 and 5 pixel ticks and a 5 pixel label gap.
func DefaultOptions(font sceneview.ColorFont) Options {
	return Options{
		MajorFont:  font,
		MinorFont:  font,
		AxisPen:    sceneview.DefaultPen(),
		TicksPen:   sceneview.DefaultPen(),
		MajorTick:  10,
		MinorTick:  5,
		TextOffset: sceneview.Pt(5, 5),
	}
}

func (o *Options) metrics() sceneview.Metrics {
	if o.Metrics == nil {
		return sceneview.DefaultFontBook()
	}
	return o.Metrics
}

func (o *Options) density() float64 {
	if o.Density == 0 {
		return 1
	}
	return o.Density
}

// equal compares the options that affect drawing. Step and Ticks are
// compared on the ruler after resolution.
func (o Options) equal(p Options) bool {
	return o.MajorFont == p.MajorFont && o.MinorFont == p.MinorFont &&
		o.MajorDecimals == p.MajorDecimals && o.MinorDecimals == p.MinorDecimals &&
		o.AxisPen.Equal(p.AxisPen) && o.TicksPen.Equal(p.TicksPen) &&
		o.MajorTick == p.MajorTick && o.MinorTick == p.MinorTick &&
		o.TextOffset == p.TextOffset && o.density() == p.density()
}
