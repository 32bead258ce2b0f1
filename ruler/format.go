package ruler

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatValue formats v with digit grouping and at most decimals fractional
// digits. Trailing fractional zeros are dropped, so integral values print
// without a decimal point.
func FormatValue(v float64, decimals int) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(max(decimals, 0))))
}

// megabaseLabel formats v in millions with an "Mb" suffix.
func megabaseLabel(v float64, decimals int) string {
	return FormatValue(v/1e6, decimals+2) + "Mb"
}

// mantissas is the 1-2-5 step ladder. Level l selects
// mantissas[l mod 3] * 10^(l div 3).
var mantissas = [3]float64{1, 2, 5}

// minorTicks is the number of minor ticks between major ticks for each
// mantissa.
var minorTicks = [3]int{9, 1, 4}

func levelStep(level int) (step float64, ticks int) {
	exp, m := level/3, level%3
	if m < 0 {
		m += 3
		exp--
	}
	return mantissas[m] * math.Pow(10, float64(exp)), minorTicks[m]
}

// chooseStep returns the first ladder step that reaches length/intervals,
// together with its minor tick count. A decade step may equal the estimate;
// 2 and 5 steps must exceed it.
func chooseStep(length float64, intervals int) (float64, int) {
	if length <= 0 || intervals < 1 {
		return 1, minorTicks[0]
	}
	approx := length / float64(intervals)
	// FindLevel wants a count that falls as the level grows: 1 for an
	// accepted step, 2 otherwise.
	count := func(level int) int {
		step, _ := levelStep(level)
		if step > approx || (level%3 == 0 && step >= approx*(1-1e-12)) {
			return 1
		}
		return 2
	}
	guess := int(math.Floor(3 * math.Log10(approx)))
	o := scale.TickOptions{Max: 1}
	// Pred is unset, so FindLevel never asks for the tick values.
	level, ok := o.FindLevel(count, nil, guess)
	if !ok {
		return 1, minorTicks[0]
	}
	return levelStep(level)
}
