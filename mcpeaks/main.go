// Command mcpeaks simulates runs with known signal peaks, searches them for
// maxima and reports how many peaks were found (efficiency), how many found
// maxima match no peak (ghosts) and which peaks were missed (ninjas).
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/pkg/profile"
	"gonum.org/v1/gonum/stat"

	"github.com/decibelcooper/padmap"
	"github.com/decibelcooper/padmap/bins"
	"github.com/decibelcooper/padmap/extrema"
	"github.com/decibelcooper/padmap/hits"
)

var (
	nHits      = flag.Int("hits", 200000, "hits per run")
	nRuns      = flag.Int("runs", 1, "number of runs")
	seed       = flag.Uint64("seed", 1, "seed of the first run")
	nBins      = flag.Int("nbins", 20, "number of bins per axis")
	background = flag.Float64("background", 100, "most probable signal away from peaks")
	spread     = flag.Float64("spread", 10, "width of the signal distribution")
	minBins    = flag.Int("minbincount", 5, "minimum hits per bin")
	title      = flag.String("title", "", "plot title")
	prefix     = flag.String("prefix", "out", "output file prefix")
	html       = flag.Bool("html", false, "also write the vote map of the first run as HTML")
	doProf     = flag.Bool("profile", false, "write a CPU profile")
	window     = padmap.RangeFlag{Lo: 0, Hi: 1}
	peakParams = padmap.FloatArrayFlags{Array: []float64{0.3, 0.3, 60, 0.05, 0.7, 0.6, 40, 0.08}}
)

func init() {
	flag.Var(&window, "window", "square window as lo:hi on both axes")
	flag.Var(&peakParams, "peak", "peak as x,y,height,width (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options]

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("mcpeaks: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}
	if *doProf {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	peaks, err := hits.ParsePeaks(peakParams.Array)
	if err != nil {
		log.Fatal(err)
	}
	geom := bins.Geometry{
		BinsX: *nBins, BinsY: *nBins,
		XMin: window.Lo, XMax: window.Hi,
		YMin: window.Lo, YMax: window.Hi,
	}

	var effs []float64
	ghosts, ninjas := 0, 0
	for run := 0; run < *nRuns; run++ {
		src, err := hits.NewMCSource(hits.MCConfig{
			Window:     bins.Rect{XMin: window.Lo, XMax: window.Hi, YMin: window.Lo, YMax: window.Hi},
			Hits:       *nHits,
			Background: *background,
			Spread:     *spread,
			Peaks:      peaks,
			Seed:       *seed + uint64(run),
		})
		if err != nil {
			log.Fatal(err)
		}
		grid, err := bins.NewGrid(geom)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := hits.FillGrid(grid, src); err != nil {
			log.Fatal(err)
		}

		res := extrema.FindMaxima(grid, extrema.FindOptions{MinBinCount: *minBins})
		r := extrema.MatchTruth(geom, res.Confirmed, src.TruePeaks())
		fmt.Printf("run %d: %d true, %d found, %d ghosts, %d ninjas, efficiency %.2f\n",
			run, r.TrueN, r.FoundN, len(r.Ghosts), len(r.Ninjas), r.Efficiency)
		for _, p := range r.Ninjas {
			fmt.Printf("  missed peak at (%.3f, %.3f)\n", p.X, p.Y)
		}
		ghosts += len(r.Ghosts)
		ninjas += len(r.Ninjas)
		if !math.IsNaN(r.Efficiency) {
			effs = append(effs, r.Efficiency)
		}

		if run == 0 {
			writeOutputs(grid, res)
		}
	}

	if len(effs) > 0 {
		mean, std := stat.MeanStdDev(effs, nil)
		if len(effs) == 1 {
			std = 0
		}
		fmt.Printf("efficiency %.3f +- %.3f over %d runs, %d ghosts, %d ninjas\n", mean, std, len(effs), ghosts, ninjas)
	}
}

func writeOutputs(grid *bins.Grid, res *extrema.Result) {
	votes := padmap.VoteGrid{Votes: res.Votes, Polarity: res.Polarity}
	writeFile(*prefix+"_votes.png", func(f *os.File) error {
		return padmap.HeatMap(f, votes, padmap.HeatMapStyle{Title: *title, XLabel: "x", YLabel: "y", Markers: res.Points})
	})
	writeFile(*prefix+"_signal.png", func(f *os.File) error {
		surface := padmap.SurfaceGrid{Surface: grid.MeanSignalSurface(*minBins)}
		return padmap.HeatMap(f, surface, padmap.HeatMapStyle{Title: *title, XLabel: "x", YLabel: "y", Markers: res.Points})
	})
	if *html {
		writeFile(*prefix+"_votes.html", func(f *os.File) error {
			return padmap.GridHTML(f, votes, *title, fmt.Sprintf("%d confirmed maxima", len(res.Confirmed)))
		})
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
