package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry holds one built value and when it was built.
type entry[V any] struct {
	value V
	built time.Time
}

// Store is a keyed TTL cache whose values are built on demand.
// Concurrent misses for the same key share a single build.
type Store[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry[V]
	// gen is bumped by InvalidateAll. Builds started under an older
	// generation are returned to their callers but never stored.
	gen uint64
	sf  singleflight.Group
}

// New creates a store. A zero TTL disables caching: every Get rebuilds.
func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

func (s *Store[V]) fresh(key string) (V, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.ttl == 0 || s.now().Sub(e.built) > s.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrBuild returns the cached value for key, or builds and stores a new one
// if it is missing or expired. Build errors are returned and not cached.
func (s *Store[V]) GetOrBuild(ctx context.Context, key string, build func(context.Context) (V, error)) (V, error) {
	if v, ok := s.fresh(key); ok {
		return v, nil
	}

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	result, err, _ := s.sf.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (interface{}, error) {
		// Another caller may have finished the build while we waited.
		if v, ok := s.fresh(key); ok {
			return v, nil
		}

		v, err := build(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.gen == gen {
			s.entries[key] = entry[V]{value: v, built: s.now()}
		}
		s.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return result.(V), nil
}

// InvalidateAll drops every key, including values still being built.
func (s *Store[V]) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[string]entry[V])
	s.gen++
	s.mu.Unlock()
}
