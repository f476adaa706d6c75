package bins

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeometry() Geometry {
	return Geometry{BinsX: 10, BinsY: 8, XMin: -1, XMax: 1, YMin: -2, YMax: 2}
}

func TestNewGridInvalidGeometry(t *testing.T) {
	for _, tc := range []struct {
		name string
		geom Geometry
	}{
		{"zero bins x", Geometry{BinsX: 0, BinsY: 3, XMin: 0, XMax: 1, YMin: 0, YMax: 1}},
		{"negative bins y", Geometry{BinsX: 3, BinsY: -1, XMin: 0, XMax: 1, YMin: 0, YMax: 1}},
		{"empty x range", Geometry{BinsX: 3, BinsY: 3, XMin: 1, XMax: 1, YMin: 0, YMax: 1}},
		{"inverted y range", Geometry{BinsX: 3, BinsY: 3, XMin: 0, XMax: 1, YMin: 2, YMax: 1}},
		{"infinite bound", Geometry{BinsX: 3, BinsY: 3, XMin: 0, XMax: math.Inf(1), YMin: 0, YMax: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGrid(tc.geom)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidGeometry), "got %v", err)
		})
	}
	assert.Panics(t, func() { MustNewGrid(Geometry{}) })
}

func TestBinCount(t *testing.T) {
	for _, n := range [][2]int{{1, 1}, {3, 7}, {10, 8}, {50, 2}} {
		g := MustNewGrid(Geometry{BinsX: n[0], BinsY: n[1], XMin: 0, XMax: 1, YMin: 0, YMax: 1})
		assert.Equal(t, (n[0]+2)*(n[1]+2), g.Len())
	}
}

func TestBinNumberLayout(t *testing.T) {
	geom := testGeometry()
	g := MustNewGrid(geom)

	// bin 0 is the bottom-left frame corner
	assert.Equal(t, 0, g.BinNumber(-5, -5))
	assert.Equal(t, geom.NumBins()-1, g.BinNumber(5, 5))
	// first interior bin
	assert.Equal(t, geom.Cols()+1, g.BinNumber(-0.99, -1.99))
	// upper edges belong to the frame
	assert.Equal(t, geom.Index(geom.BinsX+1, 1), g.BinNumber(1, -1.99))

	for i := 0; i < g.Len(); i++ {
		b, err := g.Bin(i)
		require.NoError(t, err)
		assert.Equal(t, i, b.Index())
		c := b.Center()
		assert.Equal(t, i, g.BinNumber(c.X, c.Y), "centre of bin %d", i)
	}
}

func TestBinCenterRoundTrip(t *testing.T) {
	geom := testGeometry()
	g := MustNewGrid(geom)
	hx, hy := geom.WidthX()/2, geom.WidthY()/2

	for x := geom.XMin; x <= geom.XMax; x += 0.013 {
		for y := geom.YMin; y <= geom.YMax; y += 0.037 {
			c, err := g.BinCenter(g.BinNumber(x, y))
			require.NoError(t, err)
			assert.LessOrEqual(t, math.Abs(c.X-x), hx+1e-12)
			assert.LessOrEqual(t, math.Abs(c.Y-y), hy+1e-12)
		}
	}
}

func TestBinByNumberOutOfRange(t *testing.T) {
	g := MustNewGrid(testGeometry())
	for _, i := range []int{-1, g.Len(), g.Len() + 10} {
		_, err := g.Bin(i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
		_, err = g.BinCenter(i)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	}
	_, err := g.BinCenters([]int{0, 1, -3})
	assert.Error(t, err)
	assert.Error(t, g.SelectBin(g.Len()))
}

func TestFillLandsInFrame(t *testing.T) {
	geom := testGeometry()
	g := MustNewGrid(geom)
	g.Fill(-10, 0.1, 3)
	g.Fill(10, 10, 4)
	g.Fill(math.NaN(), 0, 1)

	assert.Equal(t, 2, g.bins[geom.Index(0, geom.Row(0.1))].Entries())
	assert.Equal(t, 1, g.bins[geom.NumBins()-1].Entries())
	assert.Equal(t, 3, g.Entries())

	// frame fills never reach the mean-signal surface
	assert.Empty(t, g.MeanSignalSurface(1).Values())
}

func TestFillOrderIndependence(t *testing.T) {
	geom := testGeometry()
	rng := rand.New(rand.NewSource(1))
	type hit struct{ x, y, s float64 }
	hits := make([]hit, 2000)
	for i := range hits {
		hits[i] = hit{rng.Float64()*2.4 - 1.2, rng.Float64()*4.4 - 2.2, rng.ExpFloat64() * 50}
	}

	a, b := MustNewGrid(geom), MustNewGrid(geom)
	for _, h := range hits {
		a.Fill(h.x, h.y, h.s)
	}
	for _, i := range rng.Perm(len(hits)) {
		b.Fill(hits[i].x, hits[i].y, hits[i].s)
	}

	for i := 0; i < a.Len(); i++ {
		ba, bb := a.bins[i], b.bins[i]
		require.Equal(t, ba.Entries(), bb.Entries())
		if ba.Entries() == 0 {
			continue
		}
		assert.InDelta(t, ba.Mean(), bb.Mean(), 1e-9)
		assert.InDelta(t, ba.Sigma(), bb.Sigma(), 1e-9)
	}
	va, vb := a.MeanSignalSurface(1).Values(), b.MeanSignalSurface(1).Values()
	require.Len(t, vb, len(va))
	for i := range va {
		assert.InDelta(t, va[i], vb[i], 1e-9)
	}
}

func TestBinsInRowAndColumn(t *testing.T) {
	geom := testGeometry()
	g := MustNewGrid(geom)

	row := g.BinsInRow(0.3)
	require.Len(t, row, geom.BinsX)
	r := geom.Row(0.3)
	for i, b := range row {
		assert.Equal(t, geom.Index(i+1, r), b.Index())
	}
	for i := 1; i < len(row); i++ {
		assert.Greater(t, row[i].Center().X, row[i-1].Center().X)
	}

	col := g.BinsInColumn(-0.5)
	require.Len(t, col, geom.BinsY)
	for i := 1; i < len(col); i++ {
		assert.Greater(t, col[i].Center().Y, col[i-1].Center().Y)
		assert.Equal(t, col[0].Center().X, col[i].Center().X)
	}

	assert.Nil(t, g.BinsInRow(7))
	assert.Nil(t, g.BinsInColumn(-1.5))
}

func TestMeanSignalSurface(t *testing.T) {
	geom := Geometry{BinsX: 2, BinsY: 2, XMin: 0, XMax: 2, YMin: 0, YMax: 2}
	g := MustNewGrid(geom)
	g.Fill(0.5, 0.5, 10)
	g.Fill(0.5, 0.5, 20)
	g.Fill(1.5, 0.5, -6)
	g.Fill(1.5, 1.5, 4)
	g.Fill(1.5, 1.5, 4)
	g.Fill(1.5, 1.5, 4)

	s := g.MeanSignalSurface(2)
	assert.True(t, s.IsSet(1, 1))
	assert.Equal(t, 15.0, s.At(1, 1))
	assert.False(t, s.IsSet(2, 1), "one hit is below the minimum content")
	assert.Equal(t, 1, s.Entries(2, 1))
	assert.Equal(t, 4.0, s.At(2, 2))
	assert.False(t, s.IsSet(0, 0))
	assert.Equal(t, 0.0, s.At(-4, 9))

	s = g.MeanSignalSurface(0)
	assert.Equal(t, 6.0, s.At(2, 1), "absolute mean")
	if diff := cmp.Diff([]float64{4, 6, 15}, s.SortedValues()); diff != "" {
		t.Errorf("sorted values (-want +got):\n%s", diff)
	}

	assert.InDelta(t, 36.0/6, g.GlobalMean(), 1e-12)
}

func TestNewSurface(t *testing.T) {
	geom := Geometry{BinsX: 3, BinsY: 2, XMin: 0, XMax: 3, YMin: 0, YMax: 2}
	s, err := NewSurface(geom, [][]float64{{1, 2, 3}, {4, 5, 6}}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.At(1, 1))
	assert.Equal(t, 6.0, s.At(3, 2))
	assert.Equal(t, 10, s.Entries(2, 2))

	_, err = NewSurface(geom, [][]float64{{1, 2, 3}}, 10)
	assert.Error(t, err)
	_, err = NewSurface(geom, [][]float64{{1, 2}, {4, 5, 6}}, 10)
	assert.Error(t, err)
}
