package hits

import (
	"errors"
	"fmt"
	"io"

	"github.com/proio-org/go-proio"
	"github.com/proio-org/go-proio-pb/model/eic"
)

// ProioSource reads energy deposits from a proio file. The hit position is
// the first position of the deposit and the signal its mean energy.
type ProioSource struct {
	Path string
	// Tag selects the entries; empty means "Tracker".
	Tag string
	// Scale multiplies the signal; zero means 1.
	Scale float64
}

func (s ProioSource) Scan(fn func(Hit) error) error {
	tag := s.Tag
	if tag == "" {
		tag = "Tracker"
	}
	scale := s.Scale
	if scale == 0 {
		scale = 1
	}

	reader, err := proio.Open(s.Path)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", s.Path, err)
	}
	defer reader.Close()

	for event := range reader.ScanEvents() {
		for _, id := range event.TaggedEntries(tag) {
			eDep, ok := event.GetEntry(id).(*eic.EnergyDep)
			if !ok || len(eDep.GetPos()) == 0 {
				continue
			}
			pos := eDep.GetPos()[0].GetMean()
			h := Hit{
				X:      pos.GetX(),
				Y:      pos.GetY(),
				Signal: float64(eDep.GetMean()) * scale,
			}
			if err := fn(h); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return fmt.Errorf("%s: %w", s.Path, err)
			}
		}
	}
	if err := readError(reader.Err); err != nil {
		return fmt.Errorf("could not read %q: %w", s.Path, err)
	}
	return nil
}

// readError returns the first error queued by a finished scan. io.EOF marks
// the normal end of the stream.
func readError(errs <-chan error) error {
	for {
		select {
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
		default:
			return nil
		}
	}
}

// Files chains the sources in order.
type Files []Source

func (f Files) Scan(fn func(Hit) error) error {
	stopped := false
	wrapped := func(h Hit) error {
		err := fn(h)
		if errors.Is(err, ErrStop) {
			stopped = true
		}
		return err
	}
	for _, src := range f {
		if err := src.Scan(wrapped); err != nil {
			return err
		}
		if stopped {
			return nil
		}
	}
	return nil
}
