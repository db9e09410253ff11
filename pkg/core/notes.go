package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultNotesKey is the storage key holding the serialized notes collection.
const DefaultNotesKey = "lummu-notes"

// NoteStoreConfig holds the configuration for a NoteStore.
// Zero values select the defaults.
type NoteStoreConfig struct {
	Key            string
	Logger         *slog.Logger
	Clock          func() time.Time
	NewID          func() string
	OnPersistError func(error)
}

// LoadReport summarizes what Load restored.
type LoadReport struct {
	Loaded  int
	Dropped []RecordError
}

// NoteStore owns the ordered notes collection (most recent first) and
// persists the full collection after every mutation.
type NoteStore struct {
	storage Storage
	config  NoteStoreConfig

	mu           sync.RWMutex
	notes        []Note
	lastPersist  *time.Time
	persistErr   error
	persistCount int
}

// NewNoteStore creates a store backed by storage. Call Load to restore persisted notes.
func NewNoteStore(storage Storage, config NoteStoreConfig) *NoteStore {
	if config.Key == "" {
		config.Key = DefaultNotesKey
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.NewID == nil {
		config.NewID = newNoteID
	}
	return &NoteStore{
		storage: storage,
		config:  config,
		notes:   []Note{},
	}
}

// newNoteID returns a time-ordered unique identifier.
func newNoteID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Load restores the collection from storage, replacing the in-memory state.
// An absent key yields an empty collection. Invalid records are dropped and
// reported; an unparseable document fails with ErrMalformed and leaves the
// collection empty.
//
// The lock is held across the read so a concurrent mutation cannot be lost
// between reading the document and replacing the collection.
func (s *NoteStore) Load(ctx context.Context) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, dropped, err := s.read(ctx)
	if err != nil {
		s.notes = []Note{}
		return LoadReport{}, err
	}
	s.notes = notes

	if len(dropped) > 0 && s.config.Logger != nil {
		for _, d := range dropped {
			s.config.Logger.Warn("dropped malformed note record", "key", s.config.Key, "index", d.Index, "reason", d.Reason)
		}
	}

	return LoadReport{Loaded: len(notes), Dropped: dropped}, nil
}

func (s *NoteStore) read(ctx context.Context) ([]Note, []RecordError, error) {
	data, err := s.storage.Get(ctx, s.config.Key)
	if errors.Is(err, ErrKeyNotFound) {
		return []Note{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return DecodeNotes(data)
}

// Notes returns a snapshot of the collection.
func (s *NoteStore) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNotes(s.notes)
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns the note with the given id.
func (s *NoteStore) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i].clone(), true
	}
	return Note{}, false
}

// Create adds a new note at the front of the collection.
// A blank title returns ErrValidation and changes nothing.
func (s *NoteStore) Create(ctx context.Context, title, content, tagsRaw string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	now := s.now()
	note := Note{
		ID:        s.config.NewID(),
		Title:     title,
		Content:   strings.TrimSpace(content),
		Tags:      ParseTags(tagsRaw),
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(note.ID) >= 0 {
		return Note{}, fmt.Errorf("%w: duplicate id %q", ErrValidation, note.ID)
	}

	s.notes = append([]Note{note}, s.notes...)
	s.persist(ctx)

	if s.config.Logger != nil {
		s.config.Logger.Debug("note created", "id", note.ID)
	}
	return note.clone(), nil
}

// Update replaces the title, content and tags of an existing note in place.
// A blank title returns ErrValidation and an unknown id returns ErrNotFound;
// in both cases nothing changes.
func (s *NoteStore) Update(ctx context.Context, id, title, content, tagsRaw string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	note := s.notes[i]
	note.Title = title
	note.Content = strings.TrimSpace(content)
	note.Tags = ParseTags(tagsRaw)
	note.UpdatedAt = s.now()
	if note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}

	updated := cloneNotes(s.notes)
	updated[i] = note
	s.notes = updated
	s.persist(ctx)

	if s.config.Logger != nil {
		s.config.Logger.Debug("note updated", "id", id)
	}
	return note.clone(), nil
}

// Delete removes the note with the given id. Deleting an absent id is not an error.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := make([]Note, 0, len(s.notes))
	for _, n := range s.notes {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	s.notes = remaining
	s.persist(ctx)
	return nil
}

// Search returns the notes whose title, content or any tag contains query,
// ignoring case, in collection order. An empty query returns every note.
func (s *NoteStore) Search(query string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []Note{}
	for _, n := range s.notes {
		if n.Matches(query) {
			matches = append(matches, n.clone())
		}
	}
	return matches
}

// Follow reloads the collection whenever the notes key changes in storage and
// calls fn with the new snapshot. It blocks until ctx is done.
func (s *NoteStore) Follow(ctx context.Context, fn func([]Note)) error {
	w, ok := s.storage.(Watchable)
	if !ok {
		return errors.New("storage does not support watching")
	}

	events, err := w.Watch(ctx, s.config.Key)
	if err != nil {
		return err
	}

	for e := range events {
		if _, err := s.Load(ctx); err != nil {
			if s.config.Logger != nil {
				s.config.Logger.Warn("reload after external change failed", "event", e.String(), "error", err)
			}
			continue
		}
		if fn != nil {
			fn(s.Notes())
		}
	}
	return ctx.Err()
}

// persist overwrites the stored collection. Failures are swallowed: the
// in-memory state stays authoritative for the session.
// Caller must hold s.mu.
func (s *NoteStore) persist(ctx context.Context) {
	err := s.write(ctx)
	now := time.Now()
	s.lastPersist = &now
	s.persistErr = err
	if err == nil {
		s.persistCount++
		return
	}

	if s.config.Logger != nil {
		s.config.Logger.Warn("failed to persist notes", "key", s.config.Key, "error", err)
	}
	if s.config.OnPersistError != nil {
		s.config.OnPersistError(err)
	}
}

func (s *NoteStore) write(ctx context.Context) error {
	data, err := EncodeNotes(s.notes)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, s.config.Key, data)
}

func (s *NoteStore) indexOf(id string) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// now returns the clock reading truncated to the persisted precision, so a
// note read back from storage equals the one held in memory.
func (s *NoteStore) now() time.Time {
	return s.config.Clock().UTC().Truncate(time.Millisecond)
}

func cloneNotes(notes []Note) []Note {
	out := make([]Note, len(notes))
	for i, n := range notes {
		out[i] = n.clone()
	}
	return out
}
