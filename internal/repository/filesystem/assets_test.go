package filesystem_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/repository/filesystem"
)

func newTestStore(t *testing.T) *filesystem.AssetStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := filesystem.New(filepath.Join(t.TempDir(), "img", "slides"), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestNew_CreatesDirectory(t *testing.T) {
	store := newTestStore(t)

	info, err := os.Stat(store.Dir())
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected asset dir to be a directory")
	}
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := filesystem.New("", slog.Default()); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestStoreExistsRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "arm.png")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("expected arm.png to be absent")
	}

	if err := store.Store(ctx, "arm.png", []byte("first")); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Store(ctx, "arm.png", []byte("second")); err != nil {
		t.Fatalf("Store overwrite: %v", err)
	}

	path, err := store.Path("arm.png")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", data)
	}

	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no leftover temp files, got %d entries", len(entries))
	}

	if err := store.Remove(ctx, "arm.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	exists, err = store.Exists(ctx, "arm.png")
	if err != nil {
		t.Fatalf("Exists after remove: %v", err)
	}
	if exists {
		t.Fatal("expected arm.png to be removed")
	}
}

func TestRemove_MissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	if err := store.Remove(context.Background(), "never-existed.png"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	names := []string{"", ".", "..", "../escape.png", "sub/dir.png", `..\win.png`, ".hidden"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			if err := store.Store(ctx, name, []byte("x")); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("Store(%q): expected ErrInvalidInput, got %v", name, err)
			}
			if _, err := store.Exists(ctx, name); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("Exists(%q): expected ErrInvalidInput, got %v", name, err)
			}
		})
	}
}
