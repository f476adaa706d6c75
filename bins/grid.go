package bins

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

const (
	signalHistBins = 500
	signalHistMin  = 0
	signalHistMax  = 500
)

// Grid is a set of bins covering a rectangular window plus a one-bin frame.
type Grid struct {
	geom Geometry
	bins []*Bin

	hCount, hSignal *hbook.H2D
	hSignalDist     *hbook.H1D

	nFills    int
	sumSignal float64
}

type Option func(*Grid)

// WithPeakFitter sets the fit strategy used by Bin.FitPeak and MakeFits.
// Without it no fits are made.
func WithPeakFitter(f PeakFitter) Option {
	return func(g *Grid) {
		for _, b := range g.bins {
			b.fitter = f
		}
	}
}

// NewGrid builds an empty grid. It returns ErrInvalidGeometry for non-positive
// bin counts or empty ranges.
func NewGrid(geom Geometry, opts ...Option) (*Grid, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		geom:        geom,
		bins:        make([]*Bin, geom.NumBins()),
		hCount:      hbook.NewH2D(geom.BinsX, geom.XMin, geom.XMax, geom.BinsY, geom.YMin, geom.YMax),
		hSignal:     hbook.NewH2D(geom.BinsX, geom.XMin, geom.XMax, geom.BinsY, geom.YMin, geom.YMax),
		hSignalDist: hbook.NewH1D(signalHistBins, signalHistMin, signalHistMax),
	}
	for i := range g.bins {
		col, row := geom.ColRow(i)
		xlo, xhi := geom.ColEdges(col)
		ylo, yhi := geom.RowEdges(row)
		g.bins[i] = newBin(i, Rect{XMin: xlo, XMax: xhi, YMin: ylo, YMax: yhi}, nil)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustNewGrid is like NewGrid but panics on invalid geometry.
func MustNewGrid(geom Geometry, opts ...Option) *Grid {
	g, err := NewGrid(geom, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Geometry() Geometry { return g.geom }

// Len is the number of bins, frame included.
func (g *Grid) Len() int { return len(g.bins) }

// Fill adds one signal value at (x, y). Positions outside the window are
// recorded in the frame bins.
func (g *Grid) Fill(x, y, signal float64) {
	col, row := g.geom.Col(x), g.geom.Row(y)
	i := g.geom.Index(col, row)
	g.bins[i].AddData(signal)

	// The surfaces are filled at our bin centre so that both views agree on
	// bin membership at the edges.
	if g.geom.Interior(col, row) {
		c := g.geom.Center(i)
		g.hCount.Fill(c.X, c.Y, 1)
		g.hSignal.Fill(c.X, c.Y, signal)
	}
	g.hSignalDist.Fill(signal, 1)
	g.nFills++
	g.sumSignal += signal
}

// Entries is the total number of Fill calls.
func (g *Grid) Entries() int { return g.nFills }

// GlobalMean is the mean of every filled signal, NaN before the first Fill.
func (g *Grid) GlobalMean() float64 {
	if g.nFills == 0 {
		return nan()
	}
	return g.sumSignal / float64(g.nFills)
}

// SignalHistogram is the distribution of all filled signals. It is owned by
// the grid and must not be filled by callers.
func (g *Grid) SignalHistogram() *hbook.H1D { return g.hSignalDist }

func (g *Grid) BinNumber(x, y float64) int { return g.geom.BinNumber(x, y) }

func (g *Grid) BinAt(x, y float64) *Bin { return g.bins[g.BinNumber(x, y)] }

// Bin returns the bin with flat index i.
func (g *Grid) Bin(i int) (*Bin, error) {
	if !g.geom.validIndex(i) {
		return nil, fmt.Errorf("bin %d not in [0, %d): %w", i, len(g.bins), ErrIndexOutOfRange)
	}
	return g.bins[i], nil
}

func (g *Grid) BinCenter(i int) (Point, error) {
	if !g.geom.validIndex(i) {
		return Point{}, fmt.Errorf("bin %d not in [0, %d): %w", i, len(g.bins), ErrIndexOutOfRange)
	}
	return g.geom.Center(i), nil
}

func (g *Grid) BinCenters(indices []int) ([]Point, error) {
	out := make([]Point, 0, len(indices))
	for _, i := range indices {
		p, err := g.BinCenter(i)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// BinsInRow returns the interior bins of the row containing y, left to right.
// It returns nil when y lies outside the window.
func (g *Grid) BinsInRow(y float64) []*Bin {
	row := g.geom.Row(y)
	if row < 1 || row > g.geom.BinsY {
		return nil
	}
	out := make([]*Bin, 0, g.geom.BinsX)
	for col := 1; col <= g.geom.BinsX; col++ {
		out = append(out, g.bins[g.geom.Index(col, row)])
	}
	return out
}

// BinsInColumn returns the interior bins of the column containing x, bottom to
// top. It returns nil when x lies outside the window.
func (g *Grid) BinsInColumn(x float64) []*Bin {
	col := g.geom.Col(x)
	if col < 1 || col > g.geom.BinsX {
		return nil
	}
	out := make([]*Bin, 0, g.geom.BinsY)
	for row := 1; row <= g.geom.BinsY; row++ {
		out = append(out, g.bins[g.geom.Index(col, row)])
	}
	return out
}

// MakeFits fits every bin holding at least minEntries values and returns the
// number of successful fits. minEntries below 1 is treated as 1.
func (g *Grid) MakeFits(minEntries int) int {
	if minEntries < 1 {
		minEntries = 1
	}
	n := 0
	for _, b := range g.bins {
		if b.Entries() < minEntries {
			continue
		}
		if _, ok := b.FitPeak(minEntries); ok {
			n++
		}
	}
	return n
}
