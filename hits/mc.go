package hits

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/decibelcooper/padmap/bins"
)

// Peak is a Gaussian bump on top of the flat signal response.
type Peak struct {
	X, Y   float64
	Height float64
	Width  float64
}

// ParsePeaks groups a flat list of x, y, height, width values into peaks.
func ParsePeaks(vals []float64) ([]Peak, error) {
	if len(vals)%4 != 0 {
		return nil, fmt.Errorf("peak parameters come in groups of four (x, y, height, width), got %d values", len(vals))
	}
	peaks := make([]Peak, 0, len(vals)/4)
	for i := 0; i < len(vals); i += 4 {
		p := Peak{X: vals[i], Y: vals[i+1], Height: vals[i+2], Width: vals[i+3]}
		if p.Width <= 0 {
			return nil, fmt.Errorf("peak %d: width must be positive, got %g", i/4, p.Width)
		}
		peaks = append(peaks, p)
	}
	return peaks, nil
}

// MCConfig describes a simulated run. Hit positions are uniform over Window
// and signals follow a right-skewed Landau-like distribution whose most
// probable value is Background plus the bumps of all peaks.
type MCConfig struct {
	Window bins.Rect
	Hits   int
	// Background is the most probable signal away from peaks. Default 100.
	Background float64
	// Spread is the scale of the signal distribution at Background,
	// growing in proportion to the local signal. Default 10.
	Spread float64
	Peaks  []Peak
	Seed   uint64
}

// MCSource generates the hits of an MCConfig. Every Scan replays the same
// hits.
type MCSource struct {
	cfg MCConfig
}

func NewMCSource(cfg MCConfig) (*MCSource, error) {
	w := cfg.Window
	if !(w.XMin < w.XMax) || !(w.YMin < w.YMax) {
		return nil, fmt.Errorf("empty window [%g,%g]x[%g,%g]: %w", w.XMin, w.XMax, w.YMin, w.YMax, bins.ErrInvalidGeometry)
	}
	if cfg.Hits < 0 {
		return nil, errors.New("negative hit count")
	}
	if cfg.Background == 0 {
		cfg.Background = 100
	}
	if cfg.Spread == 0 {
		cfg.Spread = 10
	}
	for i, p := range cfg.Peaks {
		if p.Width <= 0 {
			return nil, fmt.Errorf("peak %d: width must be positive, got %g", i, p.Width)
		}
	}
	return &MCSource{cfg: cfg}, nil
}

func (s *MCSource) Config() MCConfig { return s.cfg }

// TruePeaks returns the peak positions.
func (s *MCSource) TruePeaks() []bins.Point {
	out := make([]bins.Point, len(s.cfg.Peaks))
	for i, p := range s.cfg.Peaks {
		out[i] = bins.Point{X: p.X, Y: p.Y}
	}
	return out
}

// MPV returns the most probable signal at (x, y).
func (s *MCSource) MPV(x, y float64) float64 {
	v := s.cfg.Background
	for _, p := range s.cfg.Peaks {
		dx, dy := x-p.X, y-p.Y
		v += p.Height * math.Exp(-(dx*dx+dy*dy)/(2*p.Width*p.Width))
	}
	return v
}

func (s *MCSource) Scan(fn func(Hit) error) error {
	src := rand.NewSource(s.cfg.Seed)
	w := s.cfg.Window
	xs := distuv.Uniform{Min: w.XMin, Max: w.XMax, Src: src}
	ys := distuv.Uniform{Min: w.YMin, Max: w.YMax, Src: src}

	for i := 0; i < s.cfg.Hits; i++ {
		x, y := xs.Rand(), ys.Rand()
		mpv := s.MPV(x, y)
		signal := distuv.GumbelRight{
			Mu:   mpv,
			Beta: s.cfg.Spread * mpv / s.cfg.Background,
			Src:  src,
		}
		if err := fn(Hit{X: x, Y: y, Signal: signal.Rand()}); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}
