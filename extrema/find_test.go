package extrema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/padmap/bins"
)

// bumpGrid fills a 7x7 grid with ten hits per bin: centre at (4, 4), its
// ring and the background get the given signals.
func bumpGrid(centre, ring, background float64) *bins.Grid {
	geom := bins.Geometry{BinsX: 7, BinsY: 7, XMin: 0, XMax: 7, YMin: 0, YMax: 7}
	g := bins.MustNewGrid(geom)
	for row := 1; row <= 7; row++ {
		for col := 1; col <= 7; col++ {
			v := background
			switch dc, dr := col-4, row-4; {
			case dc == 0 && dr == 0:
				v = centre
			case dc >= -1 && dc <= 1 && dr >= -1 && dr <= 1:
				v = ring
			}
			c := geom.Center(geom.Index(col, row))
			for i := 0; i < 10; i++ {
				g.Fill(c.X, c.Y, v)
			}
		}
	}
	return g
}

func TestFindMaxima(t *testing.T) {
	g := bumpGrid(10, 5, 1)
	geom := g.Geometry()
	peak := geom.Index(4, 4)

	res := FindMaxima(g, FindOptions{})
	assert.Equal(t, Maxima, res.Polarity)
	assert.False(t, res.Thresholds.Degenerate)
	assert.Equal(t, []int{peak}, res.Candidates)
	assert.Equal(t, []int{peak}, res.Confirmed)
	require.Len(t, res.Points, 1)
	assert.Equal(t, bins.Point{X: 3.5, Y: 3.5}, res.Points[0])
	assert.Equal(t, 5, res.Votes.Votes(Maxima, peak))

	assert.Empty(t, FindMinima(g, FindOptions{}).Candidates)
}

func TestFindMinima(t *testing.T) {
	g := bumpGrid(1, 5, 10)
	dip := g.Geometry().Index(4, 4)

	res := FindMinima(g, FindOptions{})
	assert.Equal(t, []int{dip}, res.Candidates)
	assert.Equal(t, []int{dip}, res.Confirmed)
	assert.Empty(t, FindMaxima(g, FindOptions{}).Candidates)
}

func TestFindNeedsNeighborhood(t *testing.T) {
	// a lone spike has a flat neighbourhood and stays a candidate
	g := bumpGrid(10, 1, 1)
	peak := g.Geometry().Index(4, 4)

	res := FindMaxima(g, FindOptions{})
	assert.Equal(t, []int{peak}, res.Candidates)
	assert.Empty(t, res.Confirmed)

	res = FindMaxima(g, FindOptions{NeighborhoodMargin: math.SmallestNonzeroFloat64})
	assert.Equal(t, []int{peak}, res.Confirmed)

	// the window scan raises the bar instead of replacing the check
	res = FindMaxima(g, FindOptions{Scanners: DefaultScanners()})
	assert.Equal(t, []int{peak}, res.Candidates)
	assert.Empty(t, res.Confirmed)
	assert.Equal(t, 5, res.Votes.Votes(Maxima, peak))
}

func TestFindWithWindowScan(t *testing.T) {
	g := bumpGrid(10, 5, 1)
	peak := g.Geometry().Index(4, 4)

	res := FindMaxima(g, FindOptions{Scanners: append(DefaultScanners(), RegionScan())})
	assert.Equal(t, []int{peak}, res.Candidates)
	assert.Equal(t, []int{peak}, res.Confirmed)
	assert.Equal(t, 6, res.Votes.Votes(Maxima, peak))

	opts := FindOptions{Scanners: DefaultScanners()}
	opts.setDefaults()
	assert.Equal(t, 5, opts.CandidateVotes)
	assert.Equal(t, 6, opts.ConfirmedVotes)
	opts = FindOptions{ConfirmedVotes: 2}
	opts.setDefaults()
	assert.Equal(t, 4, opts.CandidateVotes)
	assert.Equal(t, 2, opts.ConfirmedVotes)
}

func TestFindEmptyGrid(t *testing.T) {
	g := bins.MustNewGrid(bins.Geometry{BinsX: 4, BinsY: 4, XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	res := FindMaxima(g, FindOptions{})
	assert.True(t, res.Thresholds.Degenerate)
	assert.Empty(t, res.Candidates)
	assert.Empty(t, res.Confirmed)
}

func TestMatchTruth(t *testing.T) {
	geom := bins.Geometry{BinsX: 10, BinsY: 10, XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	truth := []bins.Point{{X: 2.5, Y: 2.5}, {X: 7.5, Y: 7.5}}
	near := geom.BinNumber(3.5, 3.5)
	ghost := geom.BinNumber(7.5, 1.5)

	r := MatchTruth(geom, []int{near, ghost}, truth)
	assert.Equal(t, 2, r.TrueN)
	assert.Equal(t, 2, r.FoundN)
	assert.Equal(t, []int{ghost}, r.Ghosts)
	assert.Equal(t, []bins.Point{{X: 7.5, Y: 7.5}}, r.Ninjas)
	assert.Equal(t, 0.5, r.Efficiency)

	r = MatchTruth(geom, []int{near}, nil)
	assert.True(t, math.IsNaN(r.Efficiency))
	assert.Equal(t, []int{near}, r.Ghosts)
}
