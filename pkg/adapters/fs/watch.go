package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/lummu/pkg/core"
)

// Watch observes the data directory and emits an event for every change to a
// key matching pattern. The channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	events := make(chan core.Event)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatcherActive(false)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, pattern, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.reportWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return events, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, pattern string, out chan<- core.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e, ok := s.mapEvent(event, pattern)
			if !ok {
				continue
			}
			if s.config.Logger != nil {
				s.config.Logger.Debug("storage event", "type", e.Type, "key", e.Key)
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.reportWatchError(err)
		}
	}
}

// mapEvent translates a raw filesystem event into a key event.
// Atomic writes surface as a Create of the target name.
func (s *Store) mapEvent(event fsnotify.Event, pattern string) (core.Event, bool) {
	name := filepath.Base(event.Name)
	if isTempFile(name) || !keyPattern.MatchString(name) {
		return core.Event{}, false
	}
	if match, err := doublestar.Match(pattern, name); err != nil || !match {
		return core.Event{}, false
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{Type: eType, Key: name, Timestamp: time.Now().Unix()}, true
}

func (s *Store) reportWatchError(err error) {
	if s.config.Logger != nil {
		s.config.Logger.Error("watcher error", "error", err)
	}
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
