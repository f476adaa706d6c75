package extrema

import (
	"math"

	"github.com/decibelcooper/padmap/bins"
)

// TruthReport compares found extrema with the true peak positions of a
// simulated run.
type TruthReport struct {
	TrueN  int
	FoundN int
	// Ghosts are found bins with no true peak in their 5x5 neighbourhood.
	Ghosts []int
	// Ninjas are true peaks with no found bin in their 5x5 neighbourhood.
	Ninjas []bins.Point
	// Efficiency is the fraction of true peaks that were found, NaN without
	// true peaks.
	Efficiency float64
}

// MatchTruth matches the found bins against the true peak positions.
func MatchTruth(geom bins.Geometry, found []int, truth []bins.Point) TruthReport {
	r := TruthReport{TrueN: len(truth), FoundN: len(found), Efficiency: math.NaN()}

	near := func(a, b int) bool {
		for _, j := range geom.Neighbors(a, true, true) {
			if j == b {
				return true
			}
		}
		return false
	}

	trueBins := make([]int, len(truth))
	for k, p := range truth {
		trueBins[k] = geom.BinNumber(p.X, p.Y)
	}

	for _, i := range found {
		matched := false
		for _, t := range trueBins {
			if near(t, i) {
				matched = true
				break
			}
		}
		if !matched {
			r.Ghosts = append(r.Ghosts, i)
		}
	}
	for k, t := range trueBins {
		matched := false
		for _, i := range found {
			if near(i, t) {
				matched = true
				break
			}
		}
		if !matched {
			r.Ninjas = append(r.Ninjas, truth[k])
		}
	}

	if r.TrueN > 0 {
		r.Efficiency = float64(r.TrueN-len(r.Ninjas)) / float64(r.TrueN)
	}
	return r
}
