package bins

import "fmt"

// SelectRectangularBins returns the interior bins from the one containing
// (r.XMin, r.YMin) to the one containing (r.XMax, r.YMax), in storage order.
// Corners outside the window are clamped; a rectangle missing the window
// selects nothing. With activate set the bins are marked selected.
func (g *Grid) SelectRectangularBins(r Rect, activate bool) ([]int, error) {
	if r.XMin > r.XMax || r.YMin > r.YMax {
		return nil, fmt.Errorf("rectangle [%g,%g]x[%g,%g] is inverted: %w", r.XMin, r.XMax, r.YMin, r.YMax, ErrInvalidGeometry)
	}
	colLo, colHi := g.geom.Col(r.XMin), g.geom.Col(r.XMax)
	rowLo, rowHi := g.geom.Row(r.YMin), g.geom.Row(r.YMax)
	if colHi < 1 || colLo > g.geom.BinsX || rowHi < 1 || rowLo > g.geom.BinsY {
		return []int{}, nil
	}
	colLo, colHi = clampInterior(colLo, g.geom.BinsX), clampInterior(colHi, g.geom.BinsX)
	rowLo, rowHi = clampInterior(rowLo, g.geom.BinsY), clampInterior(rowHi, g.geom.BinsY)

	out := make([]int, 0, (colHi-colLo+1)*(rowHi-rowLo+1))
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			out = append(out, g.geom.Index(col, row))
		}
	}
	if last := g.geom.Index(colHi, rowHi); len(out) == 0 || out[len(out)-1] != last {
		return nil, fmt.Errorf("bin mismatch: upper right bin %d, last selected %v: %w", last, out, ErrInvalidGeometry)
	}

	if activate {
		for _, i := range out {
			g.bins[i].selected = true
		}
	}
	return out, nil
}

func clampInterior(v, n int) int {
	if v < 1 {
		return 1
	}
	if v > n {
		return n
	}
	return v
}

// SignalRegionOptions restricts SelectSignalStrengthRegion.
type SignalRegionOptions struct {
	// Sensitivity is the accepted relative deviation from the reference
	// signal. Zero means 0.1.
	Sensitivity float64
	Activate    bool
	// Window limits the candidates; nil means every interior bin.
	Window *Rect
	// Bins need strictly more entries than MinBinContent. Zero means 5.
	MinBinContent int
}

// SelectSignalStrengthRegion returns the candidate bins whose mean signal lies
// within ref*(1±Sensitivity), where ref is the mean signal of bin refBin.
func (g *Grid) SelectSignalStrengthRegion(refBin int, opts SignalRegionOptions) ([]int, error) {
	if opts.Sensitivity == 0 {
		opts.Sensitivity = 0.1
	}
	if opts.MinBinContent == 0 {
		opts.MinBinContent = 5
	}
	if !g.geom.validIndex(refBin) {
		return nil, fmt.Errorf("reference bin %d: %w", refBin, ErrIndexOutOfRange)
	}

	var candidates []int
	if opts.Window != nil {
		var err error
		candidates, err = g.SelectRectangularBins(*opts.Window, false)
		if err != nil {
			return nil, err
		}
	} else {
		candidates = g.interiorIndices()
	}
	if !contains(candidates, refBin) {
		return nil, fmt.Errorf("reference bin %d is not in the selected region: %w", refBin, ErrIndexOutOfRange)
	}

	surface := g.MeanSignalSurface(1)
	ref, ok := surface.Value(refBin)
	if !ok {
		return nil, fmt.Errorf("reference bin %d holds no data: %w", refBin, ErrNoSelection)
	}
	lo, hi := ref*(1-opts.Sensitivity), ref*(1+opts.Sensitivity)

	var out []int
	for _, i := range candidates {
		if g.bins[i].Entries() <= opts.MinBinContent {
			continue
		}
		v, ok := surface.Value(i)
		if !ok || v < lo || v > hi {
			continue
		}
		out = append(out, i)
		if opts.Activate {
			g.bins[i].selected = true
		}
	}
	return out, nil
}

func (g *Grid) interiorIndices() []int {
	out := make([]int, 0, g.geom.BinsX*g.geom.BinsY)
	for row := 1; row <= g.geom.BinsY; row++ {
		for col := 1; col <= g.geom.BinsX; col++ {
			out = append(out, g.geom.Index(col, row))
		}
	}
	return out
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func (g *Grid) SelectBin(i int) error {
	b, err := g.Bin(i)
	if err != nil {
		return err
	}
	b.selected = true
	return nil
}

func (g *Grid) UnselectAll() {
	for _, b := range g.bins {
		b.selected = false
	}
}

// SelectedBins lists the selected bins in storage order.
func (g *Grid) SelectedBins() []int {
	var out []int
	for _, b := range g.bins {
		if b.selected {
			out = append(out, b.index)
		}
	}
	return out
}

// SelectedMask is a surface with 1 on selected bins, for drawing.
func (g *Grid) SelectedMask() *Surface {
	s := newSurface(g.geom)
	for i, b := range g.bins {
		s.entries[i] = b.Entries()
		if b.selected {
			s.values[i] = 1
			s.set[i] = true
		}
	}
	return s
}
