// Package fs implements core.Storage on the local filesystem: one file per
// key inside a data directory, written atomically and optionally versioned
// with git.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lummu/pkg/core"
	"github.com/aretw0/lummu/pkg/git"
)

// DefaultSystemDir holds lummu's private files (lock, sqlite database).
const DefaultSystemDir = ".lummu"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Config holds the configuration for the filesystem store.
type Config struct {
	Path         string
	AutoInit     bool
	Gitless      bool
	MustExist    bool
	ReadOnly     bool
	Logger       *slog.Logger
	SystemDir    string      // e.g. ".lummu"
	ErrorHandler func(error) // Called for watcher runtime errors.
}

// Store implements core.Storage using the filesystem and, optionally, Git.
type Store struct {
	Path   string
	git    *git.Client
	config Config

	mu            sync.RWMutex
	writes        int
	lastWrite     *time.Time
	watcherActive bool
}

// NewStore creates a new filesystem-backed store. It does no I/O until used.
func NewStore(config Config) *Store {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Store{
		Path:   config.Path,
		git:    git.NewClient(config.Path, filepath.Join(config.SystemDir, "lock"), config.Logger),
		config: config,
	}
}

// Initialize performs the necessary setup for the store (mkdir, git init).
func (s *Store) Initialize(ctx context.Context) error {
	// 1. Directory Initialization
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
	}
	if s.config.ReadOnly {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(s.Path, s.config.SystemDir), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// 2. Git Initialization
	if s.config.Gitless {
		return nil
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}

	wasNewRepo := false
	if !s.git.IsRepo() {
		if !s.config.AutoInit {
			return fmt.Errorf("path is not a git repository: %s", s.Path)
		}
		if err := s.git.Init(); err != nil {
			return fmt.Errorf("failed to git init: %w", err)
		}
		wasNewRepo = true
	}

	// Ensure .gitignore has the system directory
	mod, err := s.ensureIgnore()
	if err != nil {
		return fmt.Errorf("failed to ensure .gitignore: %w", err)
	}
	if mod && wasNewRepo {
		msg := git.FormatCommitMessage(git.CommitTypeChore, "", fmt.Sprintf("configure %s ignore", s.config.SystemDir), "")
		if _, err := s.git.CommitFiles(ctx, msg, ".gitignore"); err != nil {
			return fmt.Errorf("failed to commit .gitignore: %w", err)
		}
	}

	return nil
}

func (s *Store) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(s.Path, ".gitignore")
	ignoreEntry := s.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// Ensure newline if needed
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}
	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// Get reads the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	path, err := s.keyPath(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", core.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes value under key atomically and, unless gitless, commits it.
//
// Workflow:
//  1. Validate the key and reject writes in read-only mode.
//  2. Write the file atomically (temp file + rename).
//  3. (If Git enabled) stage and commit the file with a semantic message.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(path, []byte(value), 0644); err != nil {
		return err
	}
	s.recordWrite()

	return s.commit(ctx, key, fmt.Sprintf("update %s", key))
}

// Delete removes key. Absent keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	s.recordWrite()

	return s.commit(ctx, key, fmt.Sprintf("delete %s", key))
}

// Keys lists the stored keys.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.Path, err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || isTempFile(name) || !keyPattern.MatchString(name) {
			continue
		}
		keys = append(keys, name)
	}
	return keys, nil
}

func (s *Store) commit(ctx context.Context, key, subject string) error {
	if s.config.Gitless {
		return nil
	}
	msg := git.FormatCommitMessage(git.CommitTypeChore, "storage", subject, "")
	if _, err := s.git.CommitFiles(ctx, msg, key); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// keyPath maps a key to its file, rejecting keys that could escape the data directory.
func (s *Store) keyPath(key string) (string, error) {
	if !keyPattern.MatchString(key) || key == s.config.SystemDir || key == ".gitignore" {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.Path, key), nil
}

func (s *Store) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.writes++
	s.lastWrite = &now
}

var _ core.Storage = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
