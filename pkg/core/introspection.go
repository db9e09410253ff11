package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// NoteStoreState exposes internal state for observability.
type NoteStoreState struct {
	Key              string     `json:"key"`
	Notes            int        `json:"notes"`
	StorageType      string     `json:"storage_type"`
	Persists         int        `json:"persists"`
	LastPersist      *time.Time `json:"last_persist,omitempty"`
	LastPersistError string     `json:"last_persist_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *NoteStore) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := NoteStoreState{
		Key:         s.config.Key,
		Notes:       len(s.notes),
		StorageType: storageType(s.storage),
		Persists:    s.persistCount,
		LastPersist: s.lastPersist,
	}
	if s.persistErr != nil {
		state.LastPersistError = s.persistErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *NoteStore) ComponentType() string {
	return "note-store"
}

// BackgroundStoreState exposes internal state for observability.
type BackgroundStoreState struct {
	Key              string `json:"key"`
	Value            string `json:"value"`
	StorageType      string `json:"storage_type"`
	LastPersistError string `json:"last_persist_error,omitempty"`
}

// State implements introspection.Introspectable.
func (b *BackgroundStore) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	state := BackgroundStoreState{
		Key:         b.config.Key,
		Value:       b.value,
		StorageType: storageType(b.storage),
	}
	if b.persistErr != nil {
		state.LastPersistError = b.persistErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (b *BackgroundStore) ComponentType() string {
	return "background-store"
}

func storageType(s Storage) string {
	if s == nil {
		return "unknown"
	}
	// Try to get component type if storage implements introspection.Component
	if comp, ok := s.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "storage"
}

var _ introspection.Introspectable = (*NoteStore)(nil)
var _ introspection.Component = (*NoteStore)(nil)
var _ introspection.Introspectable = (*BackgroundStore)(nil)
var _ introspection.Component = (*BackgroundStore)(nil)
