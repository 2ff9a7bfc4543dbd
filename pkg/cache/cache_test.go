package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiscard(t *testing.T) {
	ctx := context.Background()

	if err := Discard.Set(ctx, "artifact:x", []byte("png"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := Discard.Get(ctx, "artifact:x")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%q, %v, %v), want a miss", data, hit, err)
	}
	if err := Discard.Delete(ctx, "artifact:x"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := Discard.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("png bytes"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "png bytes" {
		t.Errorf("Get = %q, want %q", data, "png bytes")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be empty, has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.svg")
	b := filepath.Join(dir, "b.svg")
	os.WriteFile(a, []byte("A"), 0o644)
	os.WriteFile(b, []byte("B"), 0o644)

	if h, err := HashFiles(nil); err != nil || h != "" {
		t.Errorf("HashFiles(nil) = %q, %v", h, err)
	}

	h1, err := HashFiles([]string{a, b})
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := HashFiles([]string{b, a, a})
	if h1 != h2 {
		t.Error("HashFiles should ignore order and duplicates")
	}

	os.WriteFile(b, []byte("B2"), 0o644)
	h3, _ := HashFiles([]string{a, b})
	if h1 == h3 {
		t.Error("HashFiles should change when file content changes")
	}

	if _, err := HashFiles([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("HashFiles should fail on missing file")
	}
}

func TestArtifactKey(t *testing.T) {
	k1 := ArtifactKey("digraph {}", ArtifactKeyOpts{Format: "svg"})
	k2 := ArtifactKey("digraph {}", ArtifactKeyOpts{Format: "png"})
	k3 := ArtifactKey("digraph { a }", ArtifactKeyOpts{Format: "svg"})
	k4 := ArtifactKey("digraph {}", ArtifactKeyOpts{Format: "svg", IconsHash: "abc"})

	if k1 == k2 || k1 == k3 || k1 == k4 {
		t.Error("ArtifactKey should depend on format, DOT, and icons")
	}
	if k1 != ArtifactKey("digraph {}", ArtifactKeyOpts{Format: "svg"}) {
		t.Error("ArtifactKey should be deterministic")
	}
	if k1[:9] != "artifact:" {
		t.Errorf("ArtifactKey prefix wrong: %s", k1)
	}
}
