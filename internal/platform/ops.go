package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lummu/pkg/adapters/fs"
	"github.com/aretw0/lummu/pkg/adapters/memory"
	"github.com/aretw0/lummu/pkg/adapters/sqlite"
	"github.com/aretw0/lummu/pkg/core"
)

// Init prepares the storage selected by the options.
// The 'uri' argument is the data directory for "fs" and "sqlite"; "memory" ignores it.
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := buildOptions(opts)

	// 1. Check for injected storage
	if o.storage != nil {
		return o.storage, nil
	}

	// 2. Initialize based on Adapter
	var storage core.Storage
	var err error

	switch o.adapter {
	case "fs":
		storage, err = initFS(uri, o)
	case "sqlite":
		storage, err = initSQLite(uri, o)
	case "memory":
		storage = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := storage.Initialize(context.Background()); err != nil {
		if c, ok := storage.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		return nil, err
	}

	return storage, nil
}

// resolvePath applies the dev-safety rules to the requested data directory.
func resolvePath(path string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// ReadOnly is inherently safe; an explicit opt-out disables the sandbox.
	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Storage, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	resolvedPath := resolvePath(path, o)
	useTemp := resolvedPath != path && path != ""

	// Versioning detection: unless configured, follow the directory.
	gitless, explicit := o.config["gitless"].(bool)
	if !explicit {
		_, err := os.Stat(filepath.Join(resolvedPath, ".git"))
		gitless = err != nil
		if gitless && o.logger != nil {
			o.logger.Debug("auto-detected gitless mode", "reason", ".git missing")
		}
	}

	return fs.NewStore(fs.Config{
		Path:         resolvedPath,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist || (!autoInit && !useTemp),
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		SystemDir:    systemDir,
		ErrorHandler: errorHandler,
	}), nil
}

// initSQLite opens the database inside the system directory of the data path.
func initSQLite(path string, o *options) (core.Storage, error) {
	isReadOnly, _ := o.config["read_only"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	dbPath := filepath.Join(resolvePath(path, o), systemDir, sqlite.DefaultFileName)
	return sqlite.Open(sqlite.Config{
		Path:     dbPath,
		ReadOnly: isReadOnly,
		Logger:   o.logger,
	})
}
