package bins

import (
	"fmt"
	"math"
)

// Geometry describes a rectangular binning window of BinsX x BinsY interior
// bins. The storage layout adds a frame of one bin on every side, so the
// backing arrays hold (BinsX+2)*(BinsY+2) cells in row-major order with index 0
// at the bottom-left frame corner.
type Geometry struct {
	BinsX, BinsY int
	XMin, XMax   float64
	YMin, YMax   float64
}

// Point is a position in detector coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in detector coordinates.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (g Geometry) Validate() error {
	if g.BinsX <= 0 || g.BinsY <= 0 {
		return fmt.Errorf("bin counts must be positive, got %dx%d: %w", g.BinsX, g.BinsY, ErrInvalidGeometry)
	}
	for _, v := range []float64{g.XMin, g.XMax, g.YMin, g.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("window bounds must be finite: %w", ErrInvalidGeometry)
		}
	}
	if g.XMin >= g.XMax {
		return fmt.Errorf("xmin %g >= xmax %g: %w", g.XMin, g.XMax, ErrInvalidGeometry)
	}
	if g.YMin >= g.YMax {
		return fmt.Errorf("ymin %g >= ymax %g: %w", g.YMin, g.YMax, ErrInvalidGeometry)
	}
	return nil
}

// Cols and Rows include the frame.
func (g Geometry) Cols() int { return g.BinsX + 2 }
func (g Geometry) Rows() int { return g.BinsY + 2 }

// NumBins is the length of the frame-inclusive storage.
func (g Geometry) NumBins() int { return g.Cols() * g.Rows() }

func (g Geometry) WidthX() float64 { return (g.XMax - g.XMin) / float64(g.BinsX) }
func (g Geometry) WidthY() float64 { return (g.YMax - g.YMin) / float64(g.BinsY) }

// Index converts a (col, row) pair to the flat storage index. It does not check
// bounds; use InFrame first.
func (g Geometry) Index(col, row int) int {
	return row*g.Cols() + col
}

// ColRow converts a flat storage index back to (col, row).
func (g Geometry) ColRow(i int) (col, row int) {
	return i % g.Cols(), i / g.Cols()
}

// InFrame reports whether (col, row) addresses a cell of the storage, frame
// included.
func (g Geometry) InFrame(col, row int) bool {
	return col >= 0 && col < g.Cols() && row >= 0 && row < g.Rows()
}

// Interior reports whether (col, row) is inside the binning window proper.
func (g Geometry) Interior(col, row int) bool {
	return col >= 1 && col <= g.BinsX && row >= 1 && row <= g.BinsY
}

func (g Geometry) validIndex(i int) bool {
	return i >= 0 && i < g.NumBins()
}

// Col returns the frame-inclusive column holding x. Values left of XMin land in
// column 0 and values at or beyond XMax land in column BinsX+1.
func (g Geometry) Col(x float64) int {
	return axisBin(x, g.XMin, g.WidthX(), g.BinsX)
}

// Row is the y counterpart of Col.
func (g Geometry) Row(y float64) int {
	return axisBin(y, g.YMin, g.WidthY(), g.BinsY)
}

func axisBin(v, lo, width float64, n int) int {
	f := math.Floor((v - lo) / width)
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f >= float64(n):
		return n + 1
	}
	return int(f) + 1
}

// BinNumber returns the flat index of the bin containing (x, y).
func (g Geometry) BinNumber(x, y float64) int {
	return g.Index(g.Col(x), g.Row(y))
}

// ColEdges returns the low and high x edges of a frame-inclusive column.
func (g Geometry) ColEdges(col int) (lo, hi float64) {
	w := g.WidthX()
	lo = g.XMin + float64(col-1)*w
	return lo, lo + w
}

// RowEdges returns the low and high y edges of a frame-inclusive row.
func (g Geometry) RowEdges(row int) (lo, hi float64) {
	w := g.WidthY()
	lo = g.YMin + float64(row-1)*w
	return lo, lo + w
}

// Center returns the centre of the bin with flat index i.
func (g Geometry) Center(i int) Point {
	col, row := g.ColRow(i)
	xlo, xhi := g.ColEdges(col)
	ylo, yhi := g.RowEdges(row)
	return Point{X: 0.5 * (xlo + xhi), Y: 0.5 * (ylo + yhi)}
}

// Neighbors returns the flat indices around bin i: the 3x3 block, or the 5x5
// block when extended is set. Cells outside the storage are skipped, so the
// result can be shorter near the frame. Indices are in ascending order.
func (g Geometry) Neighbors(i int, includeCenter, extended bool) []int {
	if !g.validIndex(i) {
		return nil
	}
	size := 1
	if extended {
		size = 2
	}
	col, row := g.ColRow(i)
	out := make([]int, 0, (2*size+1)*(2*size+1))
	for dr := -size; dr <= size; dr++ {
		for dc := -size; dc <= size; dc++ {
			if dc == 0 && dr == 0 && !includeCenter {
				continue
			}
			c, r := col+dc, row+dr
			if !g.InFrame(c, r) {
				continue
			}
			out = append(out, g.Index(c, r))
		}
	}
	return out
}
