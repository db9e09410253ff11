package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lummu/pkg/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Get(ctx, "lummu-notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "lummu-notes", "[]"))
	require.NoError(t, s.Set(ctx, "lummu-notes", `[{"id":"1"}]`))
	v, err := s.Get(ctx, "lummu-notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, "lummu-background", ""))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lummu-background", "lummu-notes"}, keys)

	require.NoError(t, s.Delete(ctx, "lummu-notes"))
	require.NoError(t, s.Delete(ctx, "lummu-notes"))
	_, err = s.Get(ctx, "lummu-notes")
	assert.ErrorIs(t, err, core.ErrKeyNotFound)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	s, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))

	notes := core.NewNoteStore(s, core.NoteStoreConfig{})
	_, err = notes.Create(ctx, "stored in sqlite", "", "db")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(Config{Path: path, ReadOnly: true})
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Initialize(ctx))

	loaded := core.NewNoteStore(reopened, core.NoteStoreConfig{})
	report, err := loaded.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, []string{"db"}, loaded.Notes()[0].Tags)

	assert.ErrorIs(t, reopened.Set(ctx, "k", "v"), core.ErrReadOnly)
}
