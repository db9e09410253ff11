// Package git versions a data directory by shelling out to the git binary.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLockName is the lock file created inside the working directory.
const DefaultLockName = ".lummu.lock"

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir  string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
// lockName is relative to workDir; empty selects DefaultLockName.
func NewClient(workDir, lockName string, logger *slog.Logger) *Client {
	if lockName == "" {
		lockName = DefaultLockName
	}
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: lockName,
	}
}

// IsInstalled reports whether a git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether WorkDir is the top of a git repository.
func (c *Client) IsRepo() bool {
	info, err := os.Stat(filepath.Join(c.WorkDir, ".git"))
	return err == nil && info.IsDir()
}

// Lock acquires the file-based lock, polling until it is free or ctx is done.
func (c *Client) Lock(ctx context.Context) (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		// Try to create lock file atomically
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock: %w", ctx.Err())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

// Run executes a raw git command in the working directory.
// NOTE: It does NOT acquire the lock. The caller must manage safety via Client.Lock().
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", args[0], err, output)
	}

	return strings.TrimSpace(output), nil
}

// Init initializes a new git repository. Re-running it is safe.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Stage records additions, modifications and removals of files in the index.
func (c *Client) Stage(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, files...)
	_, err := c.Run(args...)
	return err
}

// HasStaged reports whether the index differs from HEAD for the given files.
func (c *Client) HasStaged(files ...string) (bool, error) {
	args := append([]string{"status", "--porcelain", "--"}, files...)
	out, err := c.Run(args...)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Commit records staged changes. Identity is supplied inline so commits work
// on machines without a configured git user.
func (c *Client) Commit(msg string) error {
	_, err := c.Run("-c", "user.name=lummu", "-c", "user.email=lummu@localhost", "commit", "-m", msg)
	return err
}

// CommitFiles stages files and commits them if anything changed.
// It returns false when there was nothing to commit.
func (c *Client) CommitFiles(ctx context.Context, msg string, files ...string) (bool, error) {
	unlock, err := c.Lock(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	if err := c.Stage(files...); err != nil {
		return false, err
	}
	changed, err := c.HasStaged(files...)
	if err != nil || !changed {
		return false, err
	}
	if err := c.Commit(msg); err != nil {
		return false, err
	}
	return true, nil
}

// Log returns the one-line subjects of the most recent commits, newest first.
func (c *Client) Log(n int) ([]string, error) {
	out, err := c.Run("log", fmt.Sprintf("-%d", n), "--format=%s")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
