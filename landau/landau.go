// Package landau fits the signal distribution of a bin with a Landau-like
// peak and reports its most probable value.
//
// The Landau density has no closed form; the fit uses the Moyal
// approximation
//
//	f(x) = A * exp(-(z + exp(-z))/2),  z = (x - mpv) / width
//
// which shares the peak position and the long right tail.
package landau

import (
	"math"

	"go-hep.org/x/hep/fit"
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/padmap/bins"
)

// Moyal returns the unnormalised Moyal density at x.
func Moyal(x, mpv, width float64) float64 {
	z := (x - mpv) / width
	return math.Exp(-0.5 * (z + math.Exp(-z)))
}

func model(x float64, ps []float64) float64 {
	return ps[0] * Moyal(x, ps[1], ps[2])
}

// Fitter histograms the samples of a bin and fits a Moyal peak to the
// histogram. The zero value is ready to use.
type Fitter struct {
	// Bins is the number of histogram bins; zero means 100.
	Bins int
	// Min and Max fix the histogram range. When Min >= Max the range spans
	// the samples.
	Min, Max float64
	// Method is the minimiser; nil means Nelder-Mead.
	Method optimize.Method
}

var _ bins.PeakFitter = Fitter{}

// Fit implements bins.PeakFitter. It reports false when the samples cannot
// be histogrammed, the minimiser fails, or the result is not finite.
func (f Fitter) Fit(values []float64) (bins.PeakFit, bool) {
	h, ok := f.histogram(values)
	if !ok {
		return bins.PeakFit{}, false
	}
	xs, ys := points(h)
	if len(xs) < 3 {
		return bins.PeakFit{}, false
	}

	imax := floats.MaxIdx(ys)
	width := stat.StdDev(values, nil) / 2
	if width <= 0 || math.IsNaN(width) {
		width = (xs[len(xs)-1] - xs[0]) / 10
	}
	ps := []float64{ys[imax], xs[imax], width}

	method := f.Method
	if method == nil {
		method = &optimize.NelderMead{}
	}
	res, err := fit.H1D(h, fit.Func1D{F: model, N: len(ps), Ps: ps}, nil, method)
	if err != nil {
		return bins.PeakFit{}, false
	}
	best := res.X
	best[2] = math.Abs(best[2])
	for _, v := range best {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return bins.PeakFit{}, false
		}
	}
	if best[2] == 0 {
		return bins.PeakFit{}, false
	}

	mpvErr := parameterError(xs, ys, best, 1)
	if math.IsNaN(mpvErr) {
		return bins.PeakFit{}, false
	}
	return bins.PeakFit{MPV: best[1], MPVError: mpvErr}, true
}

func (f Fitter) histogram(values []float64) (*hbook.H1D, bool) {
	if len(values) == 0 {
		return nil, false
	}
	n := f.Bins
	if n <= 0 {
		n = 100
	}
	lo, hi := f.Min, f.Max
	if lo >= hi {
		lo, hi = floats.Min(values), floats.Max(values)
		if lo >= hi || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return nil, false
		}
		// keep the largest sample out of the overflow
		hi += (hi - lo) / float64(n)
	}
	h := hbook.NewH1D(n, lo, hi)
	for _, v := range values {
		h.Fill(v, 1)
	}
	return h, true
}

// points returns the centres and contents of the non-empty bins, the same
// points fit.H1D uses.
func points(h *hbook.H1D) (xs, ys []float64) {
	for i := 0; i < h.Len(); i++ {
		x, y := h.XY(i)
		if y == 0 {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// parameterError returns the uncertainty of parameter k from the inverse
// Hessian of the chi-square at the minimum, or NaN when the Hessian is not
// positive definite.
func parameterError(xs, ys, ps []float64, k int) float64 {
	chi2 := func(p []float64) float64 {
		var sum float64
		for i, x := range xs {
			d := (ys[i] - model(x, p)) / math.Sqrt(ys[i])
			sum += d * d
		}
		return sum
	}

	var hess mat.SymDense
	fd.Hessian(&hess, chi2, ps, nil)

	var chol mat.Cholesky
	if ok := chol.Factorize(&hess); !ok {
		return math.NaN()
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return math.NaN()
	}
	v := 2 * cov.At(k, k)
	if v < 0 {
		return math.NaN()
	}
	return math.Sqrt(v)
}
