package extrema

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/padmap/bins"
)

// quantileLevels are the cumulative fractions the thresholds are taken at.
// The lower half becomes the minima thresholds, the upper half the maxima
// thresholds.
var quantileLevels = []float64{0.05, 0.15, 0.25, 0.35, 0.45, 0.55, 0.65, 0.75, 0.85, 0.95}

// Thresholds holds the adaptive cuts of a surface, both lists ascending.
type Thresholds struct {
	Low  []float64
	High []float64
	// Degenerate is set when the surface has fewer than two distinct values.
	// All thresholds are then infinite and no scan votes.
	Degenerate bool
}

// Max is the cut a maxima candidate must exceed: the lowest of the high
// thresholds.
func (t Thresholds) Max() float64 {
	if len(t.High) == 0 {
		return math.Inf(1)
	}
	return t.High[0]
}

// Min is the cut a minima candidate must fall below: the highest of the low
// thresholds.
func (t Thresholds) Min() float64 {
	if len(t.Low) == 0 {
		return math.Inf(-1)
	}
	return t.Low[len(t.Low)-1]
}

// DeriveThresholds computes the 5%, 15%, ..., 95% quantiles of the set values
// of s.
func DeriveThresholds(s *bins.Surface) Thresholds {
	half := len(quantileLevels) / 2
	values := s.SortedValues()
	if len(values) < 2 || values[0] == values[len(values)-1] {
		t := Thresholds{
			Low:        make([]float64, half),
			High:       make([]float64, len(quantileLevels)-half),
			Degenerate: true,
		}
		for i := range t.Low {
			t.Low[i] = math.Inf(-1)
		}
		for i := range t.High {
			t.High[i] = math.Inf(1)
		}
		return t
	}

	q := make([]float64, len(quantileLevels))
	for i, p := range quantileLevels {
		q[i] = stat.Quantile(p, stat.LinInterp, values, nil)
	}
	return Thresholds{Low: q[:half], High: q[half:]}
}
