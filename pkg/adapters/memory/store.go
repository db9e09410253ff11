// Package memory implements core.Storage in process memory.
// Nothing survives the process; it backs tests and throwaway sessions.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/lummu/pkg/core"
)

// Store is a map-backed core.Storage that also implements core.Watchable.
type Store struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers map[*watcher]struct{}
}

type watcher struct {
	pattern string
	ch      chan core.Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		values:   make(map[string]string),
		watchers: make(map[*watcher]struct{}),
	}
}

func (s *Store) Initialize(ctx context.Context) error { return nil }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", core.ErrKeyNotFound
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.notify(core.Event{Type: core.EventModify, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.values[key]
	delete(s.values, key)
	s.mu.Unlock()

	if existed {
		s.notify(core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	}
	return nil
}

// Watch emits events for keys matching pattern until ctx is done.
// Slow consumers miss events rather than blocking writers.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	w := &watcher{pattern: pattern, ch: make(chan core.Event, 16)}

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, w)
		close(w.ch)
		s.mu.Unlock()
		return nil
	})

	return w.ch, nil
}

func (s *Store) notify(e core.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for w := range s.watchers {
		if ok, _ := doublestar.Match(w.pattern, e.Key); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var _ core.Storage = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
