package preview

import (
	"fmt"

	"go.uber.org/multierr"
)

type disposer struct {
	name    string
	release func() error
}

// disposalStack records the release paired with every construction step so
// teardown can run them in reverse regardless of how far construction got.
type disposalStack struct {
	items []disposer
}

func (s *disposalStack) push(name string, release func()) {
	s.pushErr(name, func() error {
		release()
		return nil
	})
}

func (s *disposalStack) pushErr(name string, release func() error) {
	s.items = append(s.items, disposer{name: name, release: release})
}

func (s *disposalStack) len() int {
	return len(s.items)
}

// unwind pops and runs every release, newest first. A failing or panicking
// release does not stop the rest; all failures are combined.
func (s *disposalStack) unwind() error {
	var errs error
	for len(s.items) > 0 {
		last := len(s.items) - 1
		d := s.items[last]
		s.items = s.items[:last]
		if err := runRelease(d); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func runRelease(d disposer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release %s: panic: %v", d.name, r)
		}
	}()
	if err := d.release(); err != nil {
		return fmt.Errorf("release %s: %w", d.name, err)
	}
	return nil
}
