package bins

import (
	"math"
	"sort"
)

// Surface is a snapshot of the mean signal per bin, laid out like the grid
// storage (frame included). Frame cells and bins below the minimum content are
// unset.
type Surface struct {
	geom    Geometry
	values  []float64
	entries []int
	set     []bool
}

// MeanSignalSurface computes |total signal / hit count| for every interior bin
// with at least minBinContent hits. minBinContent below 1 is treated as 1.
func (g *Grid) MeanSignalSurface(minBinContent int) *Surface {
	if minBinContent < 1 {
		minBinContent = 1
	}
	s := newSurface(g.geom)
	counts := g.hCount.GridXYZ()
	totals := g.hSignal.GridXYZ()
	for row := 1; row <= g.geom.BinsY; row++ {
		for col := 1; col <= g.geom.BinsX; col++ {
			i := g.geom.Index(col, row)
			n := counts.Z(col-1, row-1)
			s.entries[i] = int(n)
			if int(n) < minBinContent {
				continue
			}
			s.values[i] = math.Abs(totals.Z(col-1, row-1) / n)
			s.set[i] = true
		}
	}
	return s
}

func newSurface(geom Geometry) *Surface {
	n := geom.NumBins()
	return &Surface{
		geom:    geom,
		values:  make([]float64, n),
		entries: make([]int, n),
		set:     make([]bool, n),
	}
}

// NewSurface builds a surface from explicit interior values, indexed
// values[row][col] with row 0 at the bottom. Every bin is given the same
// number of entries. It is meant for synthetic inputs.
func NewSurface(geom Geometry, values [][]float64, entries int) (*Surface, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	if len(values) != geom.BinsY {
		return nil, ErrInvalidGeometry
	}
	s := newSurface(geom)
	for r, line := range values {
		if len(line) != geom.BinsX {
			return nil, ErrInvalidGeometry
		}
		for c, v := range line {
			i := geom.Index(c+1, r+1)
			s.values[i] = v
			s.entries[i] = entries
			s.set[i] = true
		}
	}
	return s, nil
}

// SetEntries overrides the hit count of bin (col, row).
func (s *Surface) SetEntries(col, row, n int) {
	if s.geom.InFrame(col, row) {
		s.entries[s.geom.Index(col, row)] = n
	}
}

func (s *Surface) Geometry() Geometry { return s.geom }

// At returns the mean signal of bin (col, row); unset and out-of-range cells
// read as 0.
func (s *Surface) At(col, row int) float64 {
	if !s.geom.InFrame(col, row) {
		return 0
	}
	return s.values[s.geom.Index(col, row)]
}

// Entries returns the hit count of bin (col, row).
func (s *Surface) Entries(col, row int) int {
	if !s.geom.InFrame(col, row) {
		return 0
	}
	return s.entries[s.geom.Index(col, row)]
}

// IsSet reports whether bin (col, row) is an interior bin with a value.
func (s *Surface) IsSet(col, row int) bool {
	return s.geom.InFrame(col, row) && s.set[s.geom.Index(col, row)]
}

// Value returns the mean signal by flat index.
func (s *Surface) Value(i int) (float64, bool) {
	if !s.geom.validIndex(i) || !s.set[i] {
		return 0, false
	}
	return s.values[i], true
}

// Values returns the set values in storage order.
func (s *Surface) Values() []float64 {
	var out []float64
	for i, ok := range s.set {
		if ok {
			out = append(out, s.values[i])
		}
	}
	return out
}

// SortedValues returns the set values in ascending order.
func (s *Surface) SortedValues() []float64 {
	v := s.Values()
	sort.Float64s(v)
	return v
}
