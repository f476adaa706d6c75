package bins

import (
	"fmt"
	"math"
	"sort"
)

// Attribute selects the per-bin quantity used by SortedBins.
type Attribute int

const (
	ByMean Attribute = iota
	BySigma
	ByEntries
	ByMPV
)

func (a Attribute) String() string {
	switch a {
	case ByMean:
		return "mean"
	case BySigma:
		return "sigma"
	case ByEntries:
		return "entries"
	case ByMPV:
		return "mpv"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// minSortEntries is the entry count a bin needs to take part in sorting.
const minSortEntries = 5

func (b *Bin) attribute(a Attribute) float64 {
	switch a {
	case BySigma:
		return b.Sigma()
	case ByEntries:
		return float64(b.Entries())
	case ByMPV:
		if fit, ok := b.Fit(); ok {
			return fit.MPV
		}
		return math.NaN()
	}
	return b.Mean()
}

// SortedBins returns the indices of the interior bins with at least 5
// entries, ordered by the given attribute. Equal values keep ascending index
// order. Bins without a value for the attribute (no fit for ByMPV) are left
// out.
func (g *Grid) SortedBins(a Attribute, ascending bool) []int {
	type entry struct {
		index int
		value float64
	}
	var list []entry
	for _, b := range g.bins {
		if !g.geom.Interior(g.geom.ColRow(b.index)) || b.Entries() < minSortEntries {
			continue
		}
		v := b.attribute(a)
		if math.IsNaN(v) {
			continue
		}
		list = append(list, entry{b.index, v})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if ascending {
			return list[i].value < list[j].value
		}
		return list[i].value > list[j].value
	})

	out := make([]int, len(list))
	for i, e := range list {
		out[i] = e.index
	}
	return out
}

// MaxSignalBin returns the interior bin with the highest mean signal.
func (g *Grid) MaxSignalBin() (int, bool) {
	sorted := g.SortedBins(ByMean, false)
	if len(sorted) == 0 {
		return 0, false
	}
	return sorted[0], true
}
