package extrema

import (
	"fmt"

	"github.com/decibelcooper/padmap/bins"
)

// ScanStrategy names a voting rule.
type ScanStrategy int

const (
	Horizontal ScanStrategy = iota
	Vertical
	DiagonalNE
	DiagonalNW
	Window
	Region
)

func (s ScanStrategy) String() string {
	switch s {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalNE:
		return "diagonal-ne"
	case DiagonalNW:
		return "diagonal-nw"
	case Window:
		return "window"
	case Region:
		return "region"
	}
	return fmt.Sprintf("ScanStrategy(%d)", int(s))
}

// Scanner casts votes on a surface. Only interior bins that are set and hold
// at least minBinCount entries can receive a vote.
type Scanner interface {
	Strategy() ScanStrategy
	Scan(s *bins.Surface, th Thresholds, minBinCount int) *VoteMap
}

// eligible reports whether bin (col, row) may receive votes.
func eligible(s *bins.Surface, col, row, minBinCount int) bool {
	return s.Geometry().Interior(col, row) && s.IsSet(col, row) && s.Entries(col, row) >= minBinCount
}

// neighbor reports whether (col, row) can be compared against. Frame cells
// and unset bins cannot.
func neighbor(s *bins.Surface, col, row int) (float64, bool) {
	if !s.Geometry().Interior(col, row) || !s.IsSet(col, row) {
		return 0, false
	}
	return s.At(col, row), true
}

type lineScan struct {
	strategy ScanStrategy
	dc, dr   int
}

// HorizontalScan compares every bin with its left and right neighbours.
func HorizontalScan() Scanner { return lineScan{Horizontal, 1, 0} }

// VerticalScan compares every bin with the bins below and above.
func VerticalScan() Scanner { return lineScan{Vertical, 0, 1} }

// DiagonalNEScan compares along the south-west to north-east diagonal.
func DiagonalNEScan() Scanner { return lineScan{DiagonalNE, 1, 1} }

// DiagonalNWScan compares along the north-west to south-east diagonal.
func DiagonalNWScan() Scanner { return lineScan{DiagonalNW, 1, -1} }

func (l lineScan) Strategy() ScanStrategy { return l.strategy }

// Scan votes once for a maximum when a <= c >= b and c exceeds th.Max(), or
// once for a minimum when a >= c <= b and c is below th.Min(). Flat triplets
// (a == c == b) never vote. Triplets reaching outside the window are not
// evaluated.
func (l lineScan) Scan(s *bins.Surface, th Thresholds, minBinCount int) *VoteMap {
	geom := s.Geometry()
	vm := NewVoteMap(geom)
	hi, lo := th.Max(), th.Min()
	for row := 1; row <= geom.BinsY; row++ {
		for col := 1; col <= geom.BinsX; col++ {
			if !eligible(s, col, row, minBinCount) {
				continue
			}
			a, ok := neighbor(s, col-l.dc, row-l.dr)
			if !ok {
				continue
			}
			b, ok := neighbor(s, col+l.dc, row+l.dr)
			if !ok {
				continue
			}
			c := s.At(col, row)
			i := geom.Index(col, row)
			switch {
			case a <= c && c >= b && (a < c || c > b) && c > hi:
				vm.Add(Maxima, i, 1)
			case a >= c && c <= b && (a > c || c < b) && c < lo:
				vm.Add(Minima, i, 1)
			}
		}
	}
	return vm
}

type squareScan struct {
	size int
}

// SquareScan compares every bin with the (2*size+1)^2 window around it. A
// size below 1 is treated as 1.
func SquareScan(size int) Scanner {
	if size < 1 {
		size = 1
	}
	return squareScan{size}
}

func (squareScan) Strategy() ScanStrategy { return Window }

// Scan votes once when the centre is the strict maximum (minimum) of the
// comparable cells of its window and passes th.Max() (th.Min()).
func (w squareScan) Scan(s *bins.Surface, th Thresholds, minBinCount int) *VoteMap {
	geom := s.Geometry()
	vm := NewVoteMap(geom)
	hi, lo := th.Max(), th.Min()
	for row := 1; row <= geom.BinsY; row++ {
		for col := 1; col <= geom.BinsX; col++ {
			if !eligible(s, col, row, minBinCount) {
				continue
			}
			c := s.At(col, row)
			isMax, isMin, n := true, true, 0
			for dr := -w.size; dr <= w.size; dr++ {
				for dc := -w.size; dc <= w.size; dc++ {
					if dc == 0 && dr == 0 {
						continue
					}
					v, ok := neighbor(s, col+dc, row+dr)
					if !ok {
						continue
					}
					n++
					if v >= c {
						isMax = false
					}
					if v <= c {
						isMin = false
					}
				}
			}
			if n == 0 {
				continue
			}
			i := geom.Index(col, row)
			switch {
			case isMax && c > hi:
				vm.Add(Maxima, i, 1)
			case isMin && c < lo:
				vm.Add(Minima, i, 1)
			}
		}
	}
	return vm
}

type regionScan struct{}

// RegionScan gives every bin one maxima vote per high threshold it exceeds
// and one minima vote per low threshold it falls below.
func RegionScan() Scanner { return regionScan{} }

func (regionScan) Strategy() ScanStrategy { return Region }

func (regionScan) Scan(s *bins.Surface, th Thresholds, minBinCount int) *VoteMap {
	geom := s.Geometry()
	vm := NewVoteMap(geom)
	for row := 1; row <= geom.BinsY; row++ {
		for col := 1; col <= geom.BinsX; col++ {
			if !eligible(s, col, row, minBinCount) {
				continue
			}
			v := s.At(col, row)
			i := geom.Index(col, row)
			for _, t := range th.High {
				if v > t {
					vm.Add(Maxima, i, 1)
				}
			}
			for _, t := range th.Low {
				if v < t {
					vm.Add(Minima, i, 1)
				}
			}
		}
	}
	return vm
}

// LineScanners are the four directional scans.
func LineScanners() []Scanner {
	return []Scanner{HorizontalScan(), VerticalScan(), DiagonalNEScan(), DiagonalNWScan()}
}

// DefaultScanners are the four directional scans plus the 3x3 window scan.
func DefaultScanners() []Scanner {
	return append(LineScanners(), SquareScan(1))
}
