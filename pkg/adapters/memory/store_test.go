package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/lummu/pkg/adapters/memory"
	"github.com/aretw0/lummu/pkg/core"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Initialize(ctx))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
}

func TestStore_Watch(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := memory.NewStore()

	events, err := s.Watch(ctx, "lummu-*")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, "lummu-notes", "[]"))
	require.NoError(t, s.Delete(ctx, "lummu-notes"))

	got := []core.Event{<-events, <-events}
	assert.Equal(t, core.EventModify, got[0].Type)
	assert.Equal(t, core.EventDelete, got[1].Type)
	assert.Equal(t, "lummu-notes", got[1].Key)

	cancel()
	for range events {
	}
}

func TestNoteStore_Follow(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage := memory.NewStore()
	follower := core.NewNoteStore(storage, core.NoteStoreConfig{})
	writer := core.NewNoteStore(storage, core.NoteStoreConfig{})

	updates := make(chan []core.Note, 1)
	done := make(chan error, 1)
	go func() {
		done <- follower.Follow(ctx, func(notes []core.Note) {
			select {
			case updates <- notes:
			default:
			}
		})
	}()

	// Follow subscribes asynchronously; keep writing until a reload is observed.
	deadline := time.After(2 * time.Second)
wait:
	for i := 0; ; i++ {
		_, err := writer.Create(ctx, fmt.Sprintf("note %d", i), "", "")
		require.NoError(t, err)
		select {
		case notes := <-updates:
			assert.NotEmpty(t, notes)
			break wait
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("follower never reloaded")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestNoteStore_FollowDoesNotLoseOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage := memory.NewStore()
	notes := core.NewNoteStore(storage, core.NoteStoreConfig{})

	done := make(chan error, 1)
	go func() {
		done <- notes.Follow(ctx, nil)
	}()

	const total = 500
	for i := 0; i < total; i++ {
		_, err := notes.Create(ctx, fmt.Sprintf("note %d", i), "", "")
		require.NoError(t, err)
	}

	assert.Equal(t, total, notes.Len())

	data, err := storage.Get(ctx, core.DefaultNotesKey)
	require.NoError(t, err)
	stored, dropped, err := core.DecodeNotes(data)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Len(t, stored, total)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}
