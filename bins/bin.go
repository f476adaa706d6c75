package bins

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PeakFit is the result of fitting the value distribution of a bin.
type PeakFit struct {
	MPV      float64
	MPVError float64
}

// PeakFitter fits the distribution of a set of sample values. It reports false
// when the fit fails; it must not panic.
type PeakFitter interface {
	Fit(values []float64) (PeakFit, bool)
}

// Bin is a single cell of a Grid.
type Bin struct {
	index  int
	bounds Rect
	fitter PeakFitter

	samples  []float64
	selected bool

	// cached statistics, dropped on AddData
	statsOK     bool
	mean, sigma float64
	fitDone     bool
	fit         PeakFit
	fitOK       bool
}

func newBin(index int, bounds Rect, fitter PeakFitter) *Bin {
	return &Bin{index: index, bounds: bounds, fitter: fitter}
}

func (b *Bin) Index() int     { return b.index }
func (b *Bin) Bounds() Rect   { return b.bounds }
func (b *Bin) Selected() bool { return b.selected }

// AddData records one signal value. Non-finite values are not allowed.
func (b *Bin) AddData(v float64) {
	b.samples = append(b.samples, v)
	b.statsOK = false
	b.fitDone = false
	b.fitOK = false
}

func (b *Bin) Entries() int { return len(b.samples) }

// Samples returns the recorded values. The slice must not be modified.
func (b *Bin) Samples() []float64 { return b.samples }

// Mean returns the mean of the recorded values, or NaN for an empty bin.
func (b *Bin) Mean() float64 {
	b.updateStats()
	return b.mean
}

// Sigma returns the population standard deviation of the recorded values, or
// NaN for an empty bin.
func (b *Bin) Sigma() float64 {
	b.updateStats()
	return b.sigma
}

func (b *Bin) updateStats() {
	if b.statsOK {
		return
	}
	if len(b.samples) == 0 {
		b.mean, b.sigma = math.NaN(), math.NaN()
	} else {
		b.mean, b.sigma = stat.PopMeanStdDev(b.samples, nil)
	}
	b.statsOK = true
}

// FitPeak fits the value distribution when the bin holds at least minEntries
// values and a fitter is configured. The result is kept until the next
// AddData.
func (b *Bin) FitPeak(minEntries int) (PeakFit, bool) {
	if b.fitter == nil || len(b.samples) < minEntries || len(b.samples) == 0 {
		return PeakFit{}, false
	}
	if !b.fitDone {
		b.fit, b.fitOK = b.fitter.Fit(b.samples)
		b.fitDone = true
	}
	return b.fit, b.fitOK
}

// Fit returns the last successful fit, if any, without running a new one.
func (b *Bin) Fit() (PeakFit, bool) {
	if !b.fitDone {
		return PeakFit{}, false
	}
	return b.fit, b.fitOK
}

// Center is the centre of the bin rectangle.
func (b *Bin) Center() Point {
	return Point{
		X: 0.5 * (b.bounds.XMin + b.bounds.XMax),
		Y: 0.5 * (b.bounds.YMin + b.bounds.YMax),
	}
}
