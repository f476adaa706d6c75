// Command signalmap fills a spatial bin grid from tracker hits stored in
// proio files, draws the mean-signal map and reports its local extrema and
// the high-signal region as a cut expression.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/decibelcooper/padmap"
	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/extrema"
	"github.com/decibelcooper/padmap/hits"
	"github.com/decibelcooper/padmap/landau"
	"github.com/decibelcooper/padmap/region"
)

var (
	nBinsX  = flag.Int("nbinsx", 40, "number of bins in x")
	nBinsY  = flag.Int("nbinsy", 40, "number of bins in y")
	tag     = flag.String("tag", "Tracker", "proio tag of the energy deposits")
	scale   = flag.Float64("scale", 1, "signal scale factor")
	minBins = flag.Int("minbincount", 5, "minimum hits per bin for the extremum search")
	fit     = flag.Bool("fit", false, "fit the signal distribution of every bin")
	minFit  = flag.Int("minfit", 100, "minimum hits per bin for a fit")
	xVar    = flag.String("xvar", "x", "x variable name of the region cut")
	yVar    = flag.String("yvar", "y", "y variable name of the region cut")
	title   = flag.String("title", "", "plot title")
	prefix  = flag.String("prefix", "out", "output file prefix")
	html    = flag.Bool("html", false, "also write the vote maps as HTML")
	doProf  = flag.Bool("profile", false, "write a CPU profile")
	xRange  = padmap.RangeFlag{Lo: -4, Hi: 4}
	yRange  = padmap.RangeFlag{Lo: -4, Hi: 4}
)

func init() {
	flag.Var(&xRange, "x", "x window as lo:hi")
	flag.Var(&yRange, "y", "y window as lo:hi")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <proio-input-files>...

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("signalmap: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *doProf {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	geom := bins.Geometry{
		BinsX: *nBinsX, BinsY: *nBinsY,
		XMin: xRange.Lo, XMax: xRange.Hi,
		YMin: yRange.Lo, YMax: yRange.Hi,
	}
	var opts []bins.Option
	if *fit {
		opts = append(opts, bins.WithPeakFitter(landau.Fitter{}))
	}
	grid, err := bins.NewGrid(geom, opts...)
	if err != nil {
		log.Fatal(err)
	}

	var src hits.Files
	for _, filename := range flag.Args() {
		src = append(src, hits.ProioSource{Path: filename, Tag: *tag, Scale: *scale})
	}
	n, err := hits.FillGrid(grid, src)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("filled %d hits from %d files", n, flag.NArg())

	maxima := extrema.FindMaxima(grid, extrema.FindOptions{MinBinCount: *minBins})
	minima := extrema.FindMinima(grid, extrema.FindOptions{MinBinCount: *minBins})
	if maxima.Thresholds.Degenerate {
		log.Printf("warning: mean-signal surface is flat, no extrema can be found")
	}
	report("maximum", maxima)
	report("minimum", minima)

	surface := grid.MeanSignalSurface(*minBins)
	writeFile(*prefix+"_signal.png", func(f *os.File) error {
		return padmap.HeatMap(f, padmap.SurfaceGrid{Surface: surface}, padmap.HeatMapStyle{
			Title:   *title,
			XLabel:  *xVar,
			YLabel:  *yVar,
			Markers: maxima.Points,
		})
	})
	writeFile(*prefix+"_dist.png", func(f *os.File) error {
		return padmap.DistributionPlot(f, grid.SignalHistogram(), *title, "signal")
	})

	engine := extrema.NewEngine(surface, extrema.DeriveThresholds(surface), *minBins)
	engine.Run(extrema.RegionScan())
	cut := region.BuildColumnRegion(engine.Graded(), extrema.Maxima)
	fmt.Printf("region (%d bins): %s\n", len(cut.Bins()), cut.Format(*xVar, *yVar))

	if *html {
		for _, res := range []*extrema.Result{maxima, minima} {
			res := res
			writeFile(fmt.Sprintf("%s_%s.html", *prefix, res.Polarity), func(f *os.File) error {
				votes := padmap.VoteGrid{Votes: res.Votes, Polarity: res.Polarity}
				return padmap.GridHTML(f, votes, *title+" "+res.Polarity.String()+" votes", fmt.Sprintf("%d confirmed", len(res.Confirmed)))
			})
		}
	}

	if *fit {
		log.Printf("fitted %d bins", grid.MakeFits(*minFit))
		sorted := grid.SortedBins(bins.ByMPV, false)
		if len(sorted) > 10 {
			sorted = sorted[:10]
		}
		for _, i := range sorted {
			b, _ := grid.Bin(i)
			st := b.Stats()
			c := b.Center()
			fmt.Printf("  bin %d at (%.3f, %.3f): mpv %.2f +- %.2f, mean %.2f, %d hits\n",
				i, c.X, c.Y, st.MPV, st.MPVError, st.Mean, st.Entries)
		}
	}
}

func report(kind string, res *extrema.Result) {
	fmt.Printf("%d %s candidates, %d confirmed\n", len(res.Candidates), kind, len(res.Confirmed))
	for i, p := range res.Points {
		fmt.Printf("  %s bin %d at (%.3f, %.3f)\n", kind, res.Confirmed[i], p.X, p.Y)
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
