package bins

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

func nan() float64 { return math.NaN() }

// BinStats is the per-bin summary handed to plotting and reporting code. MPV
// and MPVError are NaN when the bin has no fit.
type BinStats struct {
	Index    int
	Entries  int
	Mean     float64
	Sigma    float64
	MPV      float64
	MPVError float64
}

func (b *Bin) Stats() BinStats {
	s := BinStats{
		Index:    b.index,
		Entries:  b.Entries(),
		Mean:     b.Mean(),
		Sigma:    b.Sigma(),
		MPV:      nan(),
		MPVError: nan(),
	}
	if fit, ok := b.Fit(); ok {
		s.MPV, s.MPVError = fit.MPV, fit.MPVError
	}
	return s
}

// AllStats returns the records of every non-empty bin in storage order.
func (g *Grid) AllStats() []BinStats {
	var out []BinStats
	for _, b := range g.bins {
		if b.Entries() == 0 {
			continue
		}
		out = append(out, b.Stats())
	}
	return out
}

// LinePoint is one bin along a row or column.
type LinePoint struct {
	Pos     float64 // bin centre along the line
	Value   float64
	Err     float64
	Entries int
}

// SignalInRow returns the mean signal of the interior bins of the row at y.
// Empty bins give a zero Value and Err.
func (g *Grid) SignalInRow(y float64) []LinePoint {
	return signalPoints(g.BinsInRow(y), func(p Point) float64 { return p.X })
}

func (g *Grid) SignalInColumn(x float64) []LinePoint {
	return signalPoints(g.BinsInColumn(x), func(p Point) float64 { return p.Y })
}

func signalPoints(line []*Bin, pos func(Point) float64) []LinePoint {
	out := make([]LinePoint, len(line))
	for i, b := range line {
		out[i] = LinePoint{Pos: pos(b.Center()), Entries: b.Entries()}
		if n := b.Entries(); n > 0 {
			out[i].Value = b.Mean()
			out[i].Err = b.Sigma() / math.Sqrt(float64(n))
		}
	}
	return out
}

// MPVInRow returns the fitted MPV of the interior bins of the row at y; bins
// without a fit give zero.
func (g *Grid) MPVInRow(y float64) []LinePoint {
	return mpvPoints(g.BinsInRow(y), func(p Point) float64 { return p.X })
}

func (g *Grid) MPVInColumn(x float64) []LinePoint {
	return mpvPoints(g.BinsInColumn(x), func(p Point) float64 { return p.Y })
}

func mpvPoints(line []*Bin, pos func(Point) float64) []LinePoint {
	out := make([]LinePoint, len(line))
	for i, b := range line {
		out[i] = LinePoint{Pos: pos(b.Center()), Entries: b.Entries()}
		if fit, ok := b.Fit(); ok {
			out[i].Value = fit.MPV
			out[i].Err = fit.MPVError
		}
	}
	return out
}

// KDistribution returns K_i = SIGMA*sqrt(N)/sigma_i for the N selected bins,
// where SIGMA is the spread of the selected bins' means and sigma_i the spread
// within bin i. Empty bins and bins with zero spread are skipped.
func (g *Grid) KDistribution() ([]float64, error) {
	selected := g.SelectedBins()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	var means, sigmas []float64
	for _, i := range selected {
		b := g.bins[i]
		if b.Entries() == 0 {
			continue
		}
		means = append(means, b.Mean())
		sigmas = append(sigmas, b.Sigma())
	}
	if len(means) == 0 {
		return nil, fmt.Errorf("all %d selected bins are empty: %w", len(selected), ErrNoSelection)
	}

	spread := stat.PopStdDev(means, nil)
	n := math.Sqrt(float64(len(means)))
	out := make([]float64, 0, len(sigmas))
	for _, s := range sigmas {
		if s == 0 {
			continue
		}
		out = append(out, spread*n/s)
	}
	return out, nil
}
