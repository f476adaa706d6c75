package padmap

import (
	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/extrema"
)

// SurfaceGrid exposes the interior of a mean-signal surface as a
// plotter.GridXYZ. Unset bins read as zero.
type SurfaceGrid struct {
	Surface *bins.Surface
}

func (g SurfaceGrid) Dims() (int, int) {
	geom := g.Surface.Geometry()
	return geom.BinsX, geom.BinsY
}

func (g SurfaceGrid) Z(c, r int) float64 { return g.Surface.At(c+1, r+1) }
func (g SurfaceGrid) X(c int) float64    { return colCenter(g.Surface.Geometry(), c) }
func (g SurfaceGrid) Y(r int) float64    { return rowCenter(g.Surface.Geometry(), r) }

// VoteGrid exposes one polarity of a vote map as a plotter.GridXYZ.
type VoteGrid struct {
	Votes    *extrema.VoteMap
	Polarity extrema.Polarity
}

func (g VoteGrid) Dims() (int, int) {
	geom := g.Votes.Geometry()
	return geom.BinsX, geom.BinsY
}

func (g VoteGrid) Z(c, r int) float64 { return float64(g.Votes.At(g.Polarity, c+1, r+1)) }
func (g VoteGrid) X(c int) float64    { return colCenter(g.Votes.Geometry(), c) }
func (g VoteGrid) Y(r int) float64    { return rowCenter(g.Votes.Geometry(), r) }

func colCenter(geom bins.Geometry, c int) float64 {
	lo, hi := geom.ColEdges(c + 1)
	return 0.5 * (lo + hi)
}

func rowCenter(geom bins.Geometry, r int) float64 {
	lo, hi := geom.RowEdges(r + 1)
	return 0.5 * (lo + hi)
}
