package identcache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T, dir string) *Store {
	t.Helper()
	store, err := Open(dir, time.Hour)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestPutAndGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)
	ctx := context.Background()

	media := writeFile(t, dir, "movie.mkv", "media bytes")
	payload := []byte(`{"container": {"supported": true}}`)

	if err := store.Put(ctx, media, payload); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, media)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != string(payload) {
		t.Fatalf("payload mismatch: %s", got)
	}
}

func TestGetMissesOnUnknownPath(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)

	media := writeFile(t, dir, "movie.mkv", "media bytes")
	_, ok, err := store.Get(context.Background(), media)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss for unknown path")
	}
}

func TestGetMissesWhenFileChanged(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)
	ctx := context.Background()

	media := writeFile(t, dir, "movie.mkv", "media bytes")
	if err := store.Put(ctx, media, []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Grow the file so size no longer matches the stamped entry.
	if err := os.WriteFile(media, []byte("media bytes plus more"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	_, ok, err := store.Get(ctx, media)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss after file change")
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	dir := t.TempDir()
	store := newStore(t, dir)
	ctx := context.Background()

	media := writeFile(t, dir, "movie.mkv", "media bytes")
	if err := store.Put(ctx, media, []byte("old")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, media, []byte("new")); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, ok, err := store.Get(ctx, media)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got) != "new" {
		t.Fatalf("expected overwrite, got %s", got)
	}
}

func TestExpiredEntriesEvictedOnOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := Open(dir, time.Hour)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	media := writeFile(t, dir, "movie.mkv", "media bytes")
	if err := store.Put(ctx, media, []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	// Backdate the entry past the max age.
	if _, err := store.db.ExecContext(ctx,
		`UPDATE identifications SET created_at = ?`,
		time.Now().UTC().Add(-48*time.Hour).Format(time.RFC3339Nano)); err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := newStore(t, dir)
	_, ok, err := reopened.Get(ctx, media)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected expired entry to be evicted")
	}
}
