package lummu

import (
	"log/slog"
	"time"

	"github.com/aretw0/lummu/internal/platform"
	"github.com/aretw0/lummu/pkg/core"
)

// --- Types ---

// App bundles the note store, the background preference and the calculator.
type App = platform.App

// AppState is the introspection snapshot returned by App.State.
type AppState = platform.AppState

// FileConfig mirrors the optional lummu.yaml file.
type FileConfig = platform.FileConfig

// ConfigFileName is the name of the optional per-directory configuration file.
const ConfigFileName = platform.ConfigFileName

// --- Configuration ---

// Option defines a functional option for configuring Lummu.
type Option = platform.Option

// WithAutoInit enables automatic initialization of the data directory.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithVersioning enables or disables git versioning of the fs adapter.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".lummu").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithNotesKey overrides the storage key of the notes collection.
func WithNotesKey(key string) Option {
	return platform.WithNotesKey(key)
}

// WithBackgroundKey overrides the storage key of the background preference.
func WithBackgroundKey(key string) Option {
	return platform.WithBackgroundKey(key)
}

// WithPersistErrorHandler registers a callback for swallowed persistence failures.
func WithPersistErrorHandler(fn func(error)) Option {
	return platform.WithPersistErrorHandler(fn)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock replaces time.Now for note timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithIDGenerator replaces the note id generator.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a loaded App.
func New(path string, opts ...Option) (*App, error) {
	return platform.New(path, opts...)
}

// Init prepares a storage explicitly without loading any feature.
func Init(path string, opts ...Option) (core.Storage, error) {
	return platform.Init(path, opts...)
}

// LoadConfig reads lummu.yaml from dir. A missing file is not an error.
func LoadConfig(dir string) (FileConfig, error) {
	return platform.LoadConfig(dir)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot recursively looks upwards for a .lummu directory or lummu.yaml.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
