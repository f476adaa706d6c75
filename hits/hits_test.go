package hits

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/extrema"
)

func TestSliceSourceFill(t *testing.T) {
	g := bins.MustNewGrid(bins.Geometry{BinsX: 2, BinsY: 2, XMin: 0, XMax: 2, YMin: 0, YMax: 2})
	src := SliceSource{{0.5, 0.5, 10}, {0.5, 0.5, 20}, {1.5, 1.5, 3}, {5, 5, 1}}

	n, err := FillGrid(g, src)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, g.Entries())
	assert.Equal(t, 15.0, g.BinAt(0.5, 0.5).Mean())
}

func TestScanStopAndError(t *testing.T) {
	src := SliceSource{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}

	var seen []float64
	err := src.Scan(func(h Hit) error {
		seen = append(seen, h.Signal)
		if len(seen) == 2 {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, seen)

	boom := errors.New("boom")
	err = Files{src, src}.Scan(func(h Hit) error {
		if h.Signal == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)

	count := 0
	err = Files{src, src}.Scan(func(Hit) error {
		count++
		if count == 4 {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestProioSourceMissingFile(t *testing.T) {
	src := ProioSource{Path: "testdata/does-not-exist.proio"}
	err := src.Scan(func(Hit) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.proio")
}

func energyDep(x, y float64, mean float32) *eic.EnergyDep {
	return &eic.EnergyDep{
		Mean: &mean,
		Pos:  []*eic.ObservedPos{{Mean: &eic.XYZTD{X: &x, Y: &y}}},
	}
}

func TestProioSourceReadsTaggedDeposits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hits.proio")
	w, err := proio.Create(path)
	require.NoError(t, err)

	evt := proio.NewEvent()
	evt.AddEntries("Tracker", energyDep(0.5, 0.5, 2), energyDep(1.5, 0.5, 4))
	evt.AddEntries("Calorimeter", energyDep(0.5, 1.5, 100))
	require.NoError(t, w.Push(evt))
	evt = proio.NewEvent()
	evt.AddEntries("Tracker", energyDep(0.5, 0.5, 6), &eic.EnergyDep{})
	require.NoError(t, w.Push(evt))
	require.NoError(t, w.Close())

	var got []Hit
	err = ProioSource{Path: path, Scale: 10}.Scan(func(h Hit) error {
		got = append(got, h)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Hit{{0.5, 0.5, 20}, {1.5, 0.5, 40}, {0.5, 0.5, 60}}, got)

	g := bins.MustNewGrid(bins.Geometry{BinsX: 2, BinsY: 2, XMin: 0, XMax: 2, YMin: 0, YMax: 2})
	n, err := FillGrid(g, Files{ProioSource{Path: path}, ProioSource{Path: path, Tag: "Calorimeter"}})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4.0, g.BinAt(0.5, 0.5).Mean())
	assert.Equal(t, 100.0, g.BinAt(0.5, 1.5).Mean())
}

func TestReadError(t *testing.T) {
	errs := make(chan error, 3)
	assert.NoError(t, readError(errs))

	errs <- io.EOF
	assert.NoError(t, readError(errs))

	bad := errors.New("corrupt bucket")
	errs <- io.EOF
	errs <- bad
	assert.ErrorIs(t, readError(errs), bad)

	close(errs)
	assert.NoError(t, readError(errs))
}

func TestParsePeaks(t *testing.T) {
	peaks, err := ParsePeaks([]float64{1, 2, 30, 0.5, -1, -2, 10, 0.2})
	require.NoError(t, err)
	assert.Equal(t, []Peak{{1, 2, 30, 0.5}, {-1, -2, 10, 0.2}}, peaks)

	_, err = ParsePeaks([]float64{1, 2, 3})
	assert.Error(t, err)
	_, err = ParsePeaks([]float64{1, 2, 3, 0})
	assert.Error(t, err)

	peaks, err = ParsePeaks(nil)
	require.NoError(t, err)
	assert.Empty(t, peaks)
}

func TestNewMCSourceValidation(t *testing.T) {
	_, err := NewMCSource(MCConfig{Window: bins.Rect{XMin: 1, XMax: 1, YMin: 0, YMax: 1}})
	assert.ErrorIs(t, err, bins.ErrInvalidGeometry)
	_, err = NewMCSource(MCConfig{Window: bins.Rect{XMax: 1, YMax: 1}, Hits: -1})
	assert.Error(t, err)
	_, err = NewMCSource(MCConfig{Window: bins.Rect{XMax: 1, YMax: 1}, Peaks: []Peak{{Width: -1}}})
	assert.Error(t, err)

	s, err := NewMCSource(MCConfig{Window: bins.Rect{XMax: 1, YMax: 1}})
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Config().Background)
	assert.Equal(t, 10.0, s.Config().Spread)
}

func TestMCSourceReplays(t *testing.T) {
	cfg := MCConfig{
		Window: bins.Rect{XMin: -1, XMax: 1, YMin: 0, YMax: 3},
		Hits:   500,
		Peaks:  []Peak{{X: 0, Y: 1, Height: 50, Width: 0.2}},
		Seed:   7,
	}
	s, err := NewMCSource(cfg)
	require.NoError(t, err)

	collect := func() []Hit {
		var out []Hit
		require.NoError(t, s.Scan(func(h Hit) error {
			out = append(out, h)
			return nil
		}))
		return out
	}
	a, b := collect(), collect()
	require.Len(t, a, cfg.Hits)
	assert.Equal(t, a, b)
	for _, h := range a {
		assert.True(t, h.X >= -1 && h.X <= 1, "x=%g", h.X)
		assert.True(t, h.Y >= 0 && h.Y <= 3, "y=%g", h.Y)
	}

	assert.InDelta(t, 150, s.MPV(0, 1), 1e-12)
	assert.InDelta(t, 100, s.MPV(1, 3), 1e-3)
	assert.Equal(t, []bins.Point{{X: 0, Y: 1}}, s.TruePeaks())
}

func TestMCPeakIsFound(t *testing.T) {
	s, err := NewMCSource(MCConfig{
		Window: bins.Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		Hits:   200000,
		Peaks:  []Peak{{X: 0.55, Y: 0.55, Height: 100, Width: 0.1}},
		Seed:   1,
	})
	require.NoError(t, err)

	geom := bins.Geometry{BinsX: 10, BinsY: 10, XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	g := bins.MustNewGrid(geom)
	n, err := FillGrid(g, s)
	require.NoError(t, err)
	require.Equal(t, 200000, n)

	res := extrema.FindMaxima(g, extrema.FindOptions{})
	assert.Contains(t, res.Confirmed, geom.BinNumber(0.55, 0.55))

	report := extrema.MatchTruth(geom, res.Confirmed, s.TruePeaks())
	assert.Empty(t, report.Ghosts)
	assert.Empty(t, report.Ninjas)
	assert.Equal(t, 1.0, report.Efficiency)
}
