package incidentmap

import (
	"context"
	"errors"
	"sync/atomic"
)

var errNoMap = errors.New("map not rendered yet")

// Store holds the most recently rendered map page for serving. It is safe for
// concurrent use.
type Store struct {
	page    atomic.Pointer[[]byte]
	markers atomic.Int64
}

// Set renders m and makes it the served page.
func (s *Store) Set(m Map) error {
	b, err := RenderBytes(m)
	if err != nil {
		return err
	}
	s.page.Store(&b)
	s.markers.Store(int64(len(m.Markers)))
	return nil
}

// HTML returns the current page, or false before the first Set.
func (s *Store) HTML() ([]byte, bool) {
	p := s.page.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Markers returns the marker count of the current page.
func (s *Store) Markers() int {
	return int(s.markers.Load())
}

// CheckReadiness reports ready once a page has been rendered.
func (s *Store) CheckReadiness(_ context.Context) error {
	if s.page.Load() == nil {
		return errNoMap
	}
	return nil
}
