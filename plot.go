package padmap

import (
	"fmt"
	"image/color"
	"io"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/decibelcooper/padmap/bins"
)

// HeatMapStyle configures HeatMap. With Max <= Min the colour range follows
// the data.
type HeatMapStyle struct {
	Title          string
	XLabel, YLabel string
	Min, Max       float64
	// Markers are drawn as circles on top of the map.
	Markers []bins.Point
}

// HeatMap draws g with a colour bar on the right and writes it as PNG.
func HeatMap(w io.Writer, g plotter.GridXYZ, style HeatMapStyle) error {
	p := plot.New()
	p.Title.Text = style.Title
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	lo, hi := style.Min, style.Max
	if !(hi > lo) {
		lo, hi = gridRange(g)
	}

	img := vgimg.New(670, 400)
	dc := draw.New(img)
	dc0 := draw.Crop(dc, 0, -70, 0, 0)
	dc1 := draw.Crop(dc, 620, 0, 0, 0)

	colorMap := moreland.ExtendedBlackBody()
	colorMap.SetMin(lo)
	colorMap.SetMax(hi)
	heatMap := plotter.NewHeatMap(g, colorMap.Palette(1000))
	heatMap.Min = lo
	heatMap.Max = hi
	p.Add(heatMap)

	if len(style.Markers) > 0 {
		pts := make(plotter.XYs, len(style.Markers))
		for i, m := range style.Markers {
			pts[i].X, pts[i].Y = m.X, m.Y
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("could not create markers: %w", err)
		}
		sc.GlyphStyle.Color = color.RGBA{G: 200, B: 255, A: 255}
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
	}
	p.Draw(dc0)

	bar := plot.New()
	colorBar := &plotter.ColorBar{ColorMap: colorMap}
	colorBar.Vertical = true
	bar.Add(colorBar)
	bar.HideX()
	bar.Y.Padding = 0
	bar.Draw(dc1)

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("could not write heat map: %w", err)
	}
	return nil
}

// gridRange returns the value range of g, widened when flat so that a colour
// map can be built from it.
func gridRange(g plotter.GridXYZ) (lo, hi float64) {
	c, r := g.Dims()
	zs := make([]float64, 0, c*r)
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			zs = append(zs, g.Z(i, j))
		}
	}
	if len(zs) == 0 {
		return 0, 1
	}
	lo, hi = floats.Min(zs), floats.Max(zs)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// DistributionPlot draws a 1-D histogram and writes it as PNG.
func DistributionPlot(w io.Writer, h *hbook.H1D, title, xLabel string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.X.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}
	p.Y.Tick.Marker = PreciseTicks{NSuggestedTicks: 5}

	hPlot := hplot.NewH1D(h)
	hPlot.Infos.Style = hplot.HInfoSummary
	p.Add(hPlot)

	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("could not write distribution: %w", err)
	}
	return nil
}
