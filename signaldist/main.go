// Command signaldist plots the signal distribution of a region of uniform
// response: the bins whose mean signal is close to that of the strongest bin.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/padmap"
	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/hits"
)

var (
	nBins       = flag.Int("nbins", 40, "number of bins per axis")
	tag         = flag.String("tag", "Tracker", "proio tag of the energy deposits")
	scale       = flag.Float64("scale", 1, "signal scale factor")
	sensitivity = flag.Float64("sensitivity", 0.1, "accepted relative deviation from the reference signal")
	minContent  = flag.Int("mincontent", 5, "bins need more hits than this")
	histBins    = flag.Int("histbins", 100, "number of histogram bins")
	histMax     = flag.Float64("histmax", 500, "upper edge of the histogram")
	title       = flag.String("title", "", "plot title")
	prefix      = flag.String("prefix", "out", "output file prefix")
	window      = padmap.RangeFlag{Lo: -4, Hi: 4}
)

var selX, selY padmap.RangeFlag

func init() {
	flag.Var(&window, "window", "square binning window as lo:hi")
	flag.Var(&selX, "selx", "restrict the selection to x in lo:hi")
	flag.Var(&selY, "sely", "restrict the selection to y in lo:hi")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("signaldist: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	grid, err := bins.NewGrid(bins.Geometry{
		BinsX: *nBins, BinsY: *nBins,
		XMin: window.Lo, XMax: window.Hi,
		YMin: window.Lo, YMax: window.Hi,
	})
	if err != nil {
		log.Fatal(err)
	}
	var src hits.Files
	for _, filename := range flag.Args() {
		src = append(src, hits.ProioSource{Path: filename, Tag: *tag, Scale: *scale})
	}
	if _, err := hits.FillGrid(grid, src); err != nil {
		log.Fatal(err)
	}

	ref, ok := grid.MaxSignalBin()
	if !ok {
		log.Fatal("no bin has enough hits")
	}
	opts := bins.SignalRegionOptions{
		Sensitivity:   *sensitivity,
		Activate:      true,
		MinBinContent: *minContent,
	}
	if selX != (padmap.RangeFlag{}) || selY != (padmap.RangeFlag{}) {
		r := bins.Rect{XMin: window.Lo, XMax: window.Hi, YMin: window.Lo, YMax: window.Hi}
		if selX != (padmap.RangeFlag{}) {
			r.XMin, r.XMax = selX.Lo, selX.Hi
		}
		if selY != (padmap.RangeFlag{}) {
			r.YMin, r.YMax = selY.Lo, selY.Hi
		}
		opts.Window = &r
	}
	selected, err := grid.SelectSignalStrengthRegion(ref, opts)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("selected %d bins around bin %d", len(selected), ref)

	hist := hbook.NewH1D(*histBins, 0, *histMax)
	for _, i := range selected {
		b, err := grid.Bin(i)
		if err != nil {
			log.Fatal(err)
		}
		for _, v := range b.Samples() {
			hist.Fill(v, 1)
		}
	}
	writeFile(*prefix+"_dist.png", func(f *os.File) error {
		return padmap.DistributionPlot(f, hist, *title, "signal")
	})
	writeFile(*prefix+"_selection.png", func(f *os.File) error {
		return padmap.HeatMap(f, padmap.SurfaceGrid{Surface: grid.SelectedMask()}, padmap.HeatMapStyle{
			Title: *title, XLabel: "x", YLabel: "y", Min: 0, Max: 1,
		})
	})

	k, err := grid.KDistribution()
	if err != nil {
		log.Fatal(err)
	}
	if len(k) > 0 {
		mean, std := stat.MeanStdDev(k, nil)
		fmt.Printf("K over %d bins: %.3f +- %.3f\n", len(k), mean, std)
	}
}

func writeFile(name string, write func(f *os.File) error) {
	f, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("%s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
