package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, events <-chan StoreEvent, name, op string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-events:
			if e.Name == name && e.Op == op {
				return
			}
		case <-timeout:
			t.Fatalf("Timed out waiting for %s event on %s", op, name)
		}
	}
}

func TestStoreWatcher_ReportsExternalChanges(t *testing.T) {
	dir := t.TempDir()

	events := make(chan StoreEvent, 16)
	w, err := NewStoreWatcher(dir, func(e StoreEvent) {
		events <- e
	})
	if err != nil {
		t.Fatalf("NewStoreWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(dir, "external.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	waitForEvent(t, events, "external.png", "create")

	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	waitForEvent(t, events, "external.png", "remove")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStoreWatcher_IgnoresNonImages(t *testing.T) {
	dir := t.TempDir()

	events := make(chan StoreEvent, 16)
	w, err := NewStoreWatcher(dir, func(e StoreEvent) {
		events <- e
	})
	if err != nil {
		t.Fatalf("NewStoreWatcher failed: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "marker.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	// Events arrive in order, so the first reported one must be the image
	select {
	case e := <-events:
		if e.Name != "marker.png" {
			t.Errorf("First event name = %q, want %q", e.Name, "marker.png")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestNewStoreWatcher_MissingDir(t *testing.T) {
	_, err := NewStoreWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}
