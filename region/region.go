// Package region turns a vote map into column-wise rectangles usable as a
// fiducial cut.
package region

import (
	"fmt"
	"strings"

	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/extrema"
)

// Interval is an open range (Lo, Hi).
type Interval struct {
	Lo, Hi float64
}

func (iv Interval) Contains(v float64) bool { return v > iv.Lo && v < iv.Hi }

// Span is a run of consecutive voted rows of a column.
type Span struct {
	FirstRow, LastRow int
	Y                 Interval
}

// Column holds the voted spans of one grid column.
type Column struct {
	Col   int
	X     Interval
	Spans []Span
}

// Region is a union of column rectangles, ordered by column and row.
type Region struct {
	geom    bins.Geometry
	Columns []Column
}

// BuildColumnRegion collects, for every interior column, the runs of rows
// holding at least one vote of the given polarity.
func BuildColumnRegion(vm *extrema.VoteMap, p extrema.Polarity) Region {
	geom := vm.Geometry()
	r := Region{geom: geom}
	for col := 1; col <= geom.BinsX; col++ {
		var spans []Span
		first := -1
		for row := 1; row <= geom.BinsY+1; row++ {
			voted := row <= geom.BinsY && vm.At(p, col, row) > 0
			switch {
			case voted && first < 0:
				first = row
			case !voted && first >= 0:
				lo, _ := geom.RowEdges(first)
				_, hi := geom.RowEdges(row - 1)
				spans = append(spans, Span{FirstRow: first, LastRow: row - 1, Y: Interval{lo, hi}})
				first = -1
			}
		}
		if len(spans) == 0 {
			continue
		}
		lo, hi := geom.ColEdges(col)
		r.Columns = append(r.Columns, Column{Col: col, X: Interval{lo, hi}, Spans: spans})
	}
	return r
}

func (r Region) Empty() bool { return len(r.Columns) == 0 }

// Contains reports whether (x, y) lies strictly inside one of the
// rectangles.
func (r Region) Contains(x, y float64) bool {
	for _, c := range r.Columns {
		if !c.X.Contains(x) {
			continue
		}
		for _, s := range c.Spans {
			if s.Y.Contains(y) {
				return true
			}
		}
	}
	return false
}

// Bins returns the covered bin indices in storage order.
func (r Region) Bins() []int {
	var out []int
	for row := 1; row <= r.geom.BinsY; row++ {
		for _, c := range r.Columns {
			for _, s := range c.Spans {
				if row >= s.FirstRow && row <= s.LastRow {
					out = append(out, r.geom.Index(c.Col, row))
				}
			}
		}
	}
	return out
}

// Format renders the region as a cut expression over the variables xVar and
// yVar:
//
//	(x>a&&x<b)&&(y>c&&y<d||y>e&&y<f)||(x>g&&x<h)&&(...)
//
// An empty region formats as "".
func (r Region) Format(xVar, yVar string) string {
	var b strings.Builder
	for i, c := range r.Columns {
		if i > 0 {
			b.WriteString("||")
		}
		fmt.Fprintf(&b, "(%[1]s>%[2]g&&%[1]s<%[3]g)&&(", xVar, c.X.Lo, c.X.Hi)
		for j, s := range c.Spans {
			if j > 0 {
				b.WriteString("||")
			}
			fmt.Fprintf(&b, "%[1]s>%[2]g&&%[1]s<%[3]g", yVar, s.Y.Lo, s.Y.Hi)
		}
		b.WriteString(")")
	}
	return b.String()
}

func (r Region) String() string { return r.Format("x", "y") }
