// Package lifecycle bridges storage change events to the
// github.com/aretw0/lifecycle runtime so that watchers can be composed with
// other supervised sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lummu/pkg/core"
)

type storageSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that re-emits storage events.
// core.Event satisfies lifecycle.Event through its String method.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &storageSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

// WatchSource starts watching pattern on storage and wraps the stream as a Source.
func WatchSource(ctx context.Context, storage core.Watchable, pattern string) (lifecycle.Source, error) {
	events, err := storage.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}
	return NewSource(events), nil
}

func (s *storageSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storageSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
