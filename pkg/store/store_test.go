package store

import (
	"context"
	"slices"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/floorlay/floorlay/pkg/plan"
)

// testStore exercises the ProjectStore contract against one backend.
func testStore(t *testing.T, s ProjectStore) {
	t.Helper()
	ctx := context.Background()

	// Missing project: nil, nil.
	got, err := s.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("Get(missing) error = %v", err)
	}
	if got != nil {
		t.Fatalf("Get(missing) = %+v, want nil", got)
	}

	p := plan.New("Office")
	p.Items = append(p.Items, plan.FurnitureItem{
		ID: "desk-1", Name: "Desk", WidthCm: 140, DepthCm: 70,
		Position: &plan.Point{X: 10, Y: 20},
	})
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err = s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil || got.Name != "Office" || len(got.Items) != 1 {
		t.Fatalf("Get() = %+v, want stored project", got)
	}
	if got.Items[0].Position == nil || got.Items[0].Position.X != 10 {
		t.Errorf("item position not round-tripped: %+v", got.Items[0].Position)
	}

	// Put replaces.
	p.Name = "Office v2"
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put(replace) error = %v", err)
	}
	got, _ = s.Get(ctx, p.ID)
	if got.Name != "Office v2" {
		t.Errorf("Get() after replace = %q, want %q", got.Name, "Office v2")
	}

	q := plan.New("Warehouse")
	if err := s.Put(ctx, q); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 2 || !slices.Contains(ids, p.ID) || !slices.Contains(ids, q.ID) {
		t.Errorf("List() = %v, want both project ids", ids)
	}

	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := s.Get(ctx, p.ID); got != nil {
		t.Error("Get() after delete returned the project")
	}

	// Deleting a missing project is a no-op.
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	p := plan.New("Office")
	if err := s.Put(ctx, p); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's snapshot must not leak into the store.
	p.Name = "mutated"
	got, _ := s.Get(ctx, p.ID)
	if got.Name != "Office" {
		t.Errorf("stored name = %q, want %q", got.Name, "Office")
	}

	// Mutating a retrieved snapshot must not leak either.
	got.Name = "mutated again"
	again, _ := s.Get(ctx, p.ID)
	if again.Name != "Office" {
		t.Errorf("stored name = %q after reader mutation, want %q", again.Name, "Office")
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreRejectsBadIdentity(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Path traversal in an identity must never reach the filesystem.
	if _, err := s.Get(context.Background(), "../escape"); err == nil {
		t.Error("Get() accepted a traversal identity")
	}
}

func TestRedisStore(t *testing.T) {
	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(m.Close)

	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer s.Close()
	testStore(t, s)
}
