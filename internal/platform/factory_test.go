package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lummu/pkg/adapters/memory"
	"github.com/aretw0/lummu/pkg/core"
)

func TestNew_AdapterSelection(t *testing.T) {
	tests := []struct {
		adapter  string
		wantType string
	}{
		{adapter: "fs", wantType: "fs-store"},
		{adapter: "sqlite", wantType: "sqlite-store"},
		{adapter: "memory", wantType: "memory-store"},
	}

	for _, tt := range tests {
		t.Run(tt.adapter, func(t *testing.T) {
			app, err := New(t.TempDir(), WithAdapter(tt.adapter), WithVersioning(false))
			require.NoError(t, err)
			defer app.Close()

			assert.Equal(t, tt.wantType, app.StorageType())
			assert.Equal(t, 0, app.Notes.Len())
			assert.Equal(t, "", app.Background.Current())
			assert.Equal(t, "0", app.Calculator.Display())
		})
	}
}

func TestNew_UnknownAdapter(t *testing.T) {
	_, err := New(t.TempDir(), WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")
}

func TestNew_RestoresState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	app, err := New(dir, WithVersioning(false))
	require.NoError(t, err)
	_, err = app.Notes.Create(ctx, "Groceries", "milk", "home, errands")
	require.NoError(t, err)
	require.NoError(t, app.Background.Set(ctx, core.DefaultGradient))

	reopened, err := New(dir, WithVersioning(false))
	require.NoError(t, err)

	assert.Equal(t, 1, reopened.LoadReport.Loaded)
	notes := reopened.Notes.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, []string{"home", "errands"}, notes[0].Tags)
	assert.Equal(t, core.DefaultGradient, reopened.Background.Current())
}

func TestNew_CustomKeysAndHooks(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	app, err := New("",
		WithStorage(storage),
		WithNotesKey("my-notes"),
		WithBackgroundKey("my-bg"),
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(func() string { return "fixed-id" }),
	)
	require.NoError(t, err)

	note, err := app.Notes.Create(ctx, "Title", "", "")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", note.ID)
	assert.True(t, note.CreatedAt.Equal(fixed))

	_, err = storage.Get(ctx, "my-notes")
	assert.NoError(t, err)
	_, err = storage.Get(ctx, core.DefaultNotesKey)
	assert.ErrorIs(t, err, core.ErrKeyNotFound)

	require.NoError(t, app.Background.Set(ctx, "https://example.com/a.png"))
	v, err := storage.Get(ctx, "my-bg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", v)
}

func TestNew_MalformedNotesFailClosed(t *testing.T) {
	ctx := context.Background()
	storage := memory.NewStore()
	require.NoError(t, storage.Set(ctx, core.DefaultNotesKey, `{"not":"an array"}`))

	_, err := New("", WithStorage(storage))
	assert.ErrorIs(t, err, core.ErrMalformed)

	v, err := storage.Get(ctx, core.DefaultNotesKey)
	require.NoError(t, err)
	assert.Equal(t, `{"not":"an array"}`, v, "bad data must never be overwritten")
}

func TestNew_PersistErrorHandler(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	// Seed the directory, then reopen read-only so every write fails.
	seed, err := New(dir, WithVersioning(false))
	require.NoError(t, err)
	_, err = seed.Notes.Create(ctx, "Seed", "", "")
	require.NoError(t, err)

	var persistErrs []error
	app, err := New(dir,
		WithReadOnly(true),
		WithPersistErrorHandler(func(err error) { persistErrs = append(persistErrs, err) }),
	)
	require.NoError(t, err)

	_, err = app.Notes.Create(ctx, "Second", "", "")
	require.NoError(t, err, "persistence failures are not surfaced")
	assert.Equal(t, 2, app.Notes.Len())
	require.Len(t, persistErrs, 1)
	assert.True(t, errors.Is(persistErrs[0], core.ErrReadOnly))

	state := app.State().(AppState)
	assert.Equal(t, 2, state.Notes.Notes)
	assert.NotEmpty(t, state.Notes.LastPersistError)
}

func TestInit_SQLiteLocation(t *testing.T) {
	dir := t.TempDir()
	storage, err := Init(dir, WithAdapter("sqlite"))
	require.NoError(t, err)
	defer storage.(interface{ Close() error }).Close()

	_, err = os.Stat(filepath.Join(dir, ".lummu", "lummu.db"))
	assert.NoError(t, err)
}

func TestInit_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := Init(missing, WithMustExist(true), WithVersioning(false))
	assert.Error(t, err)

	_, err = Init(missing, WithAutoInit(true), WithVersioning(false))
	assert.NoError(t, err)
	assert.DirExists(t, filepath.Join(missing, ".lummu"))
}

func TestApp_State(t *testing.T) {
	app, err := New("", WithAdapter("memory"))
	require.NoError(t, err)
	require.NoError(t, app.Calculator.InputDigit('7'))

	state, ok := app.State().(AppState)
	require.True(t, ok)
	assert.Equal(t, "memory-store", state.Storage)
	assert.Equal(t, core.DefaultNotesKey, state.Notes.Key)
	assert.Equal(t, core.DefaultBackgroundKey, state.Background.Key)
	assert.Equal(t, "7", state.Calculator.Display)
	assert.Equal(t, "lummu", app.ComponentType())
}
