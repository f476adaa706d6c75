// Package hits supplies (x, y, signal) triplets to a bins.Grid.
package hits

import (
	"errors"

	"github.com/decibelcooper/padmap/bins"
)

// ErrStop can be returned by a Scan callback to end the scan early without
// an error.
var ErrStop = errors.New("hits: stop")

// Hit is one detector hit.
type Hit struct {
	X, Y   float64
	Signal float64
}

// Source streams hits. Scan calls fn for every hit in order and returns the
// first error fn returns, other than ErrStop.
type Source interface {
	Scan(fn func(Hit) error) error
}

// SliceSource serves hits from memory.
type SliceSource []Hit

func (s SliceSource) Scan(fn func(Hit) error) error {
	for _, h := range s {
		if err := fn(h); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

// FillGrid fills every hit of src into g and returns the number of hits
// filled.
func FillGrid(g *bins.Grid, src Source) (int, error) {
	n := 0
	err := src.Scan(func(h Hit) error {
		g.Fill(h.X, h.Y, h.Signal)
		n++
		return nil
	})
	return n, err
}
