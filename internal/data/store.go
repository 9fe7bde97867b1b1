package data

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrSuperseded is returned by Select when a newer selection replaced the request
// before its load finished. The loaded data is still cached.
var ErrSuperseded = errors.New("version selection superseded")

// Store caches loaded libraries per version and tracks the selected version.
// Loading is the only asynchronous step; a stale load never replaces the current selection.
type Store struct {
	loader *Loader

	mu         sync.Mutex
	cache      map[string]*Libraries
	current    *Libraries
	selected   string
	generation uint64
}

// NewStore creates a Store backed by the loader.
func NewStore(loader *Loader) *Store {
	return &Store{
		loader: loader,
		cache:  make(map[string]*Libraries),
	}
}

// Current returns the libraries of the selected version.
// While nothing is loaded it returns an empty, non-nil Libraries.
func (s *Store) Current() *Libraries {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Empty()
	}
	return s.current
}

// Selected returns the most recently requested version.
func (s *Store) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select makes version the current one, loading it on first use.
// If another Select starts before this load completes, the result is cached
// but not published, and ErrSuperseded is returned.
func (s *Store) Select(ctx context.Context, version string) (*Libraries, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.selected = version
	if libs, ok := s.cache[version]; ok {
		s.current = libs
		s.mu.Unlock()
		return libs, nil
	}
	s.mu.Unlock()

	libs, err := s.loader.Load(ctx, version)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[version] = libs
	if s.generation != gen {
		slog.Debug("discarding stale library load", "version", version, "selected", s.selected)
		return libs, ErrSuperseded
	}
	s.current = libs
	return libs, nil
}

// Cached reports whether a version has already been loaded.
func (s *Store) Cached(version string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[version]
	return ok
}
