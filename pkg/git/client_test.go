package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestClient_Lock(t *testing.T) {
	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	unlock, err := client.Lock(context.Background())
	if err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	lockPath := filepath.Join(tmpDir, DefaultLockName)
	if _, err := os.Stat(lockPath); os.IsNotExist(err) {
		t.Error("Lock file not created")
	}

	// While held, a second acquisition gives up when its context expires.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.Lock(ctx); err == nil {
		t.Error("expected contention error while lock is held")
	}

	unlock()

	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("Lock file not removed after unlock")
	}
}

func TestClient_CommitFiles(t *testing.T) {
	if !IsInstalled() {
		t.Skip("git not installed")
	}

	tmpDir := t.TempDir()
	client := NewClient(tmpDir, "", nil)

	if err := client.Init(); err != nil {
		t.Fatalf("Failed to init: %v", err)
	}
	if !client.IsRepo() {
		t.Fatal("expected IsRepo after init")
	}

	file := filepath.Join(tmpDir, "value")
	if err := os.WriteFile(file, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	committed, err := client.CommitFiles(ctx, "first", "value")
	if err != nil {
		t.Fatalf("CommitFiles failed: %v", err)
	}
	if !committed {
		t.Error("expected a commit for a new file")
	}

	// Unchanged content has nothing to commit.
	committed, err = client.CommitFiles(ctx, "second", "value")
	if err != nil {
		t.Fatalf("CommitFiles failed: %v", err)
	}
	if committed {
		t.Error("expected no commit when nothing changed")
	}

	// Removals are recorded too.
	if err := os.Remove(file); err != nil {
		t.Fatal(err)
	}
	if _, err := client.CommitFiles(ctx, "remove", "value"); err != nil {
		t.Fatalf("CommitFiles failed for removal: %v", err)
	}

	subjects, err := client.Log(5)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(subjects, ",") != "remove,first" {
		t.Errorf("unexpected log: %v", subjects)
	}
}

func TestFormatCommitMessage(t *testing.T) {
	got := FormatCommitMessage("", "storage", "update lummu-notes", "")
	want := "chore(storage): update lummu-notes\n\n" + Footer
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = FormatCommitMessage(CommitTypeFeat, "", "add", " body ")
	if !strings.HasPrefix(got, "feat: add\n\nbody\n\n") {
		t.Errorf("unexpected message %q", got)
	}
}
