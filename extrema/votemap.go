package extrema

import (
	"fmt"

	"github.com/decibelcooper/padmap/bins"
)

// Polarity selects the maxima or the minima half of a vote map.
type Polarity int

const (
	Maxima Polarity = iota
	Minima
)

func (p Polarity) String() string {
	switch p {
	case Maxima:
		return "maxima"
	case Minima:
		return "minima"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// VoteMap counts votes per bin, one grid per polarity, laid out like the bin
// storage.
type VoteMap struct {
	geom  bins.Geometry
	votes [2][]int
}

func NewVoteMap(geom bins.Geometry) *VoteMap {
	n := geom.NumBins()
	return &VoteMap{geom: geom, votes: [2][]int{make([]int, n), make([]int, n)}}
}

func (vm *VoteMap) Geometry() bins.Geometry { return vm.geom }

// Add adds n votes to bin i. Indices outside the storage are ignored.
func (vm *VoteMap) Add(p Polarity, i, n int) {
	if i < 0 || i >= len(vm.votes[p]) {
		return
	}
	vm.votes[p][i] += n
}

// Votes returns the votes of bin i.
func (vm *VoteMap) Votes(p Polarity, i int) int {
	if i < 0 || i >= len(vm.votes[p]) {
		return 0
	}
	return vm.votes[p][i]
}

func (vm *VoteMap) At(p Polarity, col, row int) int {
	if !vm.geom.InFrame(col, row) {
		return 0
	}
	return vm.votes[p][vm.geom.Index(col, row)]
}

// Merge adds the votes of o, which must share the geometry.
func (vm *VoteMap) Merge(o *VoteMap) {
	for p := range vm.votes {
		for i, n := range o.votes[p] {
			vm.votes[p][i] += n
		}
	}
}

func (vm *VoteMap) Reset() {
	for p := range vm.votes {
		for i := range vm.votes[p] {
			vm.votes[p][i] = 0
		}
	}
}

// BinsWithVotes returns the interior bins whose vote count lies in
// [minVotes, maxVotes], in storage order.
func (vm *VoteMap) BinsWithVotes(p Polarity, minVotes, maxVotes int) []int {
	var out []int
	for row := 1; row <= vm.geom.BinsY; row++ {
		for col := 1; col <= vm.geom.BinsX; col++ {
			i := vm.geom.Index(col, row)
			if n := vm.votes[p][i]; n >= minVotes && n <= maxVotes {
				out = append(out, i)
			}
		}
	}
	return out
}

// MaxVotes is the highest count of the polarity.
func (vm *VoteMap) MaxVotes(p Polarity) int {
	m := 0
	for _, n := range vm.votes[p] {
		if n > m {
			m = n
		}
	}
	return m
}

// Snapshot returns a copy of the counts of one polarity.
func (vm *VoteMap) Snapshot(p Polarity) []int {
	return append([]int(nil), vm.votes[p]...)
}
