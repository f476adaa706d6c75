package extrema

import (
	"math"

	"github.com/decibelcooper/padmap/bins"
)

// FindOptions tunes FindMaxima and FindMinima. Zero fields take the defaults
// noted below.
type FindOptions struct {
	// MinBinCount is the entry count a bin needs to be considered. Default 5.
	MinBinCount int
	// CandidateVotes is the consensus a bin needs to become a candidate.
	// Default: one vote from every consensus scanner.
	CandidateVotes int
	// ConfirmedVotes is the consensus a bin needs after the neighbourhood
	// check to be reported. Default: CandidateVotes+1.
	ConfirmedVotes int
	// NeighborhoodMargin scales the global mean in the neighbourhood check.
	// Default 1.05.
	NeighborhoodMargin float64
	// Scanners default to the four directional scans.
	Scanners []Scanner
}

func (o *FindOptions) setDefaults() {
	if o.MinBinCount == 0 {
		o.MinBinCount = 5
	}
	if o.NeighborhoodMargin == 0 {
		o.NeighborhoodMargin = 1.05
	}
	if len(o.Scanners) == 0 {
		o.Scanners = LineScanners()
	}
	if o.CandidateVotes == 0 {
		o.CandidateVotes = consensusScanners(o.Scanners)
	}
	if o.ConfirmedVotes == 0 {
		o.ConfirmedVotes = o.CandidateVotes + 1
	}
}

// consensusScanners counts the scanners voting into the consensus map.
func consensusScanners(scanners []Scanner) int {
	n := 0
	for _, sc := range scanners {
		if sc.Strategy() != Region {
			n++
		}
	}
	return n
}

// Result is the outcome of one search.
type Result struct {
	Polarity   Polarity
	Thresholds Thresholds
	// Candidates passed the scan consensus, Confirmed also the
	// neighbourhood check. Both are in storage order.
	Candidates []int
	Confirmed  []int
	// Points are the centres of the confirmed bins.
	Points []bins.Point
	Votes  *VoteMap
}

// FindMaxima searches the mean-signal surface of g for local maxima. A
// candidate gets one extra vote when the mean of its neighbours exceeds the
// global mean signal times the margin.
func FindMaxima(g *bins.Grid, opts FindOptions) *Result {
	return find(g, Maxima, opts)
}

// FindMinima is the minima counterpart of FindMaxima; the neighbourhood mean
// has to fall below the global mean divided by the margin.
func FindMinima(g *bins.Grid, opts FindOptions) *Result {
	return find(g, Minima, opts)
}

func find(g *bins.Grid, p Polarity, opts FindOptions) *Result {
	opts.setDefaults()

	surface := g.MeanSignalSurface(opts.MinBinCount)
	th := DeriveThresholds(surface)
	e := NewEngine(surface, th, opts.MinBinCount)
	e.Run(opts.Scanners...)

	res := &Result{Polarity: p, Thresholds: th, Votes: e.Votes()}
	res.Candidates = e.BinsWithVotes(p, opts.CandidateVotes, math.MaxInt)

	global := math.Abs(g.GlobalMean())
	for _, i := range res.Candidates {
		m, ok := neighborhoodMean(e, surface, i)
		if !ok {
			continue
		}
		if p == Maxima && m > global*opts.NeighborhoodMargin ||
			p == Minima && m < global/opts.NeighborhoodMargin {
			e.AddVote(p, i)
		}
	}

	res.Confirmed = e.BinsWithVotes(p, opts.ConfirmedVotes, math.MaxInt)
	res.Points = make([]bins.Point, len(res.Confirmed))
	geom := g.Geometry()
	for k, i := range res.Confirmed {
		res.Points[k] = geom.Center(i)
	}
	return res
}

// neighborhoodMean averages the surface over the set neighbours of bin i.
func neighborhoodMean(e *Engine, s *bins.Surface, i int) (float64, bool) {
	var sum float64
	n := 0
	for _, j := range e.NeighborIndices(i, false, false) {
		v, ok := s.Value(j)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
