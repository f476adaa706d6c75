package extrema

import "github.com/decibelcooper/padmap/bins"

// Engine runs scans over one surface and keeps their votes. It is not safe
// for concurrent use.
type Engine struct {
	surface     *bins.Surface
	th          Thresholds
	minBinCount int

	votes  *VoteMap
	graded *VoteMap
}

func NewEngine(s *bins.Surface, th Thresholds, minBinCount int) *Engine {
	geom := s.Geometry()
	return &Engine{
		surface:     s,
		th:          th,
		minBinCount: minBinCount,
		votes:       NewVoteMap(geom),
		graded:      NewVoteMap(geom),
	}
}

func (e *Engine) Thresholds() Thresholds { return e.th }

// Reset clears both vote maps.
func (e *Engine) Reset() {
	e.votes.Reset()
	e.graded.Reset()
}

// Run applies the scanners in order. Region scans add to the graded map,
// every other scan to the consensus map.
func (e *Engine) Run(scanners ...Scanner) {
	for _, sc := range scanners {
		vm := sc.Scan(e.surface, e.th, e.minBinCount)
		if sc.Strategy() == Region {
			e.graded.Merge(vm)
			continue
		}
		e.votes.Merge(vm)
	}
}

// Votes is the consensus map of the binary scans.
func (e *Engine) Votes() *VoteMap { return e.votes }

// Graded is the map of the region scans.
func (e *Engine) Graded() *VoteMap { return e.graded }

// AddVote adds one consensus vote to bin i.
func (e *Engine) AddVote(p Polarity, i int) { e.votes.Add(p, i, 1) }

// BinsWithVotes returns the bins whose consensus vote count lies in
// [minVotes, maxVotes].
func (e *Engine) BinsWithVotes(p Polarity, minVotes, maxVotes int) []int {
	return e.votes.BinsWithVotes(p, minVotes, maxVotes)
}

// NeighborIndices returns the 3x3 (or 5x5 when extended) block around bin i,
// without cells outside the storage.
func (e *Engine) NeighborIndices(i int, includeCenter, extended bool) []int {
	return e.surface.Geometry().Neighbors(i, includeCenter, extended)
}
