package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/lummu/pkg/core"
)

// options holds the internal configuration for the Lummu application.
type options struct {
	storage core.Storage
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
}

// Option defines a functional option for configuring Lummu.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		storage: nil,
		logger:  nil,
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAutoInit enables automatic initialization of the data directory (mkdir and, if versioned, git init).
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.config["auto_init"] = auto
	}
}

// WithVersioning enables or disables git versioning of the fs adapter.
// When unset, versioning is on only if the data directory is already a git repository.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["gitless"] = !enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage (e.g. mock).
// If provided, the adapter selection is skipped.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or "memory".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSystemDir sets the hidden directory name (default ".lummu").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithNotesKey overrides the storage key of the notes collection.
func WithNotesKey(key string) Option {
	return func(o *options) {
		o.config["notes_key"] = key
	}
}

// WithBackgroundKey overrides the storage key of the background preference.
func WithBackgroundKey(key string) Option {
	return func(o *options) {
		o.config["background_key"] = key
	}
}

// WithPersistErrorHandler registers a callback for swallowed persistence failures.
// The in-memory state stays authoritative either way.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["persist_error_handler"] = fn
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithClock replaces time.Now for note timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.config["clock"] = clock
	}
}

// WithIDGenerator replaces the note id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.config["id_generator"] = fn
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Writes fail inside the adapter and are swallowed by the stores.
// 2. Initialization (Mkdir, Git Init) is skipped.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true), the data directory is redirected to a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
