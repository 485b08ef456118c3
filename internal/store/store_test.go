package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "docs"))
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	db, err := NewSQLite(ctx, filepath.Join(dir, "blockpad.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}

	stores := map[string]Store{
		BackendMemory: NewMemory(),
		BackendFile:   file,
		BackendSQLite: db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "contentState"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}

			if err := s.Put(ctx, "contentState", []byte(`{"v":1}`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, err := s.Get(ctx, "contentState")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `{"v":1}` {
				t.Errorf("expected payload, got %q", got)
			}

			if err := s.Put(ctx, "contentState", []byte(`{"v":2}`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, _ = s.Get(ctx, "contentState")
			if string(got) != `{"v":2}` {
				t.Errorf("expected overwrite, got %q", got)
			}

			if err := s.Delete(ctx, "contentState"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if _, err := s.Get(ctx, "contentState"); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
			if err := s.Delete(ctx, "contentState"); err != nil {
				t.Errorf("deleting a missing key should succeed, got %v", err)
			}

			if err := s.Put(ctx, "../escape", []byte("x")); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestMemoryIsolatesPayloads(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	data := []byte("abc")
	_ = m.Put(ctx, "k", data)
	data[0] = 'X'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("store should copy on Put, got %q", got)
	}
	got[0] = 'Y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("store should copy on Get, got %q", again)
	}
}

func TestClosedStores(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if err := s.Put(ctx, "k", []byte("x")); err == nil {
				t.Error("expected error after Close")
			}
		})
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemory().Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Put(context.Background(), "doc", []byte("payload")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("expected only doc.json, got %v", names)
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "nested", "blockpad.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer db.Close()

	if _, err := db.UpdatedAt(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := db.Put(ctx, "k", []byte("x")); err != nil {
		t.Fatal(err)
	}
	ts, err := db.UpdatedAt(ctx, "k")
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if ts.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend string
		path    string
	}{
		{"", ""},
		{"memory", ""},
		{"file", filepath.Join(dir, "files")},
		{"SQLite", filepath.Join(dir, "db.sqlite")},
	}
	for _, tt := range tests {
		s, err := Open(ctx, tt.backend, tt.path)
		if err != nil {
			t.Errorf("Open(%q) failed: %v", tt.backend, err)
			continue
		}
		s.Close()
	}

	if _, err := Open(ctx, "redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}
