package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	key := ArtifactKey([]byte("digraph install {}"), "svg")

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(empty) = ok %v, err %v, want miss", ok, err)
	}

	want := []byte("<svg/>")
	if err := c.Set(ctx, key, want, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v, err %v, want hit", ok, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Get() hit after delete")
	}

	// Deleting a missing key is a no-op.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("Get() returned an expired entry")
	}
}

func TestArtifactKey(t *testing.T) {
	dot := []byte("digraph install { a -> b }")

	if ArtifactKey(dot, "svg") != ArtifactKey(dot, "svg") {
		t.Error("same content produced different keys")
	}
	if ArtifactKey(dot, "svg") == ArtifactKey(dot, "png") {
		t.Error("different formats share a key")
	}
	if ArtifactKey(dot, "svg") == ArtifactKey([]byte("digraph install {}"), "svg") {
		t.Error("different content shares a key")
	}
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}
