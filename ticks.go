package padmap

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks on round multiples with labels that carry
// no more digits than the spacing needs, plus unlabelled minor ticks.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: strconv.FormatFloat(min, 'g', -1, 64)}}
	}

	mult, major := tickSpacing(max-min, n)
	digits := decimals(major)

	var ticks []plot.Tick
	for _, v := range multiples(min, max, major) {
		v = roundTo(v, digits)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
next:
	for _, v := range multiples(min, max, minor) {
		for _, tk := range ticks {
			if math.Abs(tk.Value-v) < minor*1e-9 {
				continue next
			}
		}
		ticks = append(ticks, plot.Tick{Value: v})
	}
	return ticks
}

// tickSpacing returns the major spacing as mult * 10^k, chosen so that the
// span holds about n ticks.
func tickSpacing(span float64, n int) (mult int, major float64) {
	unit := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/unit < float64(n-1) {
		unit /= 10
	}
	mult = int(span / unit / float64(n-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	return mult, float64(mult) * unit
}

// multiples lists the multiples of step inside [min, max].
func multiples(min, max, step float64) []float64 {
	var out []float64
	for v := math.Floor(min/step) * step; v <= max; v += step {
		if v >= min {
			out = append(out, v)
		}
	}
	return out
}

// decimals is the number of decimals that multiples of step need, plus one.
func decimals(step float64) int {
	d := -int(math.Floor(math.Log10(step)))
	if d < 0 {
		d = 0
	}
	return d + 1
}

func roundTo(x float64, digits int) float64 {
	if x == 0 || x == math.Trunc(x) {
		return x + 0 // drops a negative zero
	}
	pow := math.Pow10(digits)
	if math.IsInf(x*pow, 0) {
		return x
	}
	return math.Round(x*pow) / pow
}
