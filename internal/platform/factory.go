package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/lummu/pkg/calc"
	"github.com/aretw0/lummu/pkg/core"
)

// App wires the three Lummu features to a single storage.
type App struct {
	Storage    core.Storage
	Notes      *core.NoteStore
	Background *core.BackgroundStore
	Calculator *calc.Engine
	// LoadReport describes the notes restored at startup.
	LoadReport core.LoadReport

	logger *slog.Logger
}

// AppState is the aggregated introspection snapshot of an App.
type AppState struct {
	Storage    any                       `json:"storage"`
	Notes      core.NoteStoreState       `json:"notes"`
	Background core.BackgroundStoreState `json:"background"`
	Calculator calc.State                `json:"calculator"`
}

// New creates a fully loaded App.
//
//	app, err := lummu.New("./notes", lummu.WithAdapter("sqlite"))
//
// The URI argument is adapter-specific (a directory for 'fs' and 'sqlite').
// A notes document that cannot be parsed aborts startup with core.ErrMalformed
// so the bad data is never overwritten.
func New(uri string, opts ...Option) (*App, error) {
	// 1. Initialize storage (path, git, directories)
	storage, err := Init(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	notesKey, _ := o.config["notes_key"].(string)
	backgroundKey, _ := o.config["background_key"].(string)
	onPersistError, _ := o.config["persist_error_handler"].(func(error))
	clock, _ := o.config["clock"].(func() time.Time)
	newID, _ := o.config["id_generator"].(func() string)

	app := &App{
		Storage: storage,
		Notes: core.NewNoteStore(storage, core.NoteStoreConfig{
			Key:            notesKey,
			Logger:         logger,
			Clock:          clock,
			NewID:          newID,
			OnPersistError: onPersistError,
		}),
		Background: core.NewBackgroundStore(storage, core.BackgroundStoreConfig{
			Key:            backgroundKey,
			Logger:         logger,
			OnPersistError: onPersistError,
		}),
		Calculator: calc.New(),
		logger:     logger,
	}

	// 2. Restore persisted state
	ctx := context.Background()
	report, err := app.Notes.Load(ctx)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	app.LoadReport = report

	if _, err := app.Background.Load(ctx); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load background: %w", err)
	}

	logger.Debug("lummu ready", "storage", app.StorageType(), "notes", report.Loaded, "dropped", len(report.Dropped))
	return app, nil
}

// StorageType returns the component type of the active storage.
func (a *App) StorageType() string {
	if comp, ok := a.Storage.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "storage"
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	state := AppState{
		Notes:      a.Notes.State().(core.NoteStoreState),
		Background: a.Background.State().(core.BackgroundStoreState),
		Calculator: a.Calculator.State(),
	}
	if in, ok := a.Storage.(introspection.Introspectable); ok {
		state.Storage = in.State()
	} else {
		state.Storage = a.StorageType()
	}
	return state
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "lummu"
}

// Close releases the storage when it holds resources (e.g. a database handle).
func (a *App) Close() error {
	if c, ok := a.Storage.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)
