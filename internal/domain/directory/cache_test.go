package directory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testWorkers() []Worker {
	return []Worker{
		{EmployeeID: 101, FullName: "Ayesha Khan", Department: "Engineering", Status: StatusActive, Email: "Ayesha.Khan@example.com", PersonalEmail: "ayesha.k@gmail.com"},
		{EmployeeID: 102, FullName: "  Bilal  Ahmed ", Department: "Finance", Status: StatusResigned, Email: "bilal@example.com"},
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestIndexLookupPriority(t *testing.T) {
	idx := buildIndex(testWorkers(), time.Now())

	if w := idx.ByID(101); w == nil || w.FullName != "Ayesha Khan" {
		t.Fatalf("ByID failed: %+v", w)
	}
	if w := idx.ByEmail("  AYESHA.KHAN@EXAMPLE.COM "); w == nil || w.EmployeeID != 101 {
		t.Fatalf("official email lookup failed: %+v", w)
	}
	if w := idx.ByEmail("ayesha.k@gmail.com"); w == nil || w.EmployeeID != 101 {
		t.Fatalf("personal email lookup failed: %+v", w)
	}
	if w := idx.ByNameKey(" bilal   ahmed "); w == nil || w.EmployeeID != 102 {
		t.Fatalf("name key lookup failed: %+v", w)
	}
	if w := idx.ByNameKey("nobody here"); w != nil {
		t.Fatalf("expected miss, got %+v", w)
	}

	// Identifier outranks a conflicting email.
	if w := idx.Match(102, "ayesha.khan@example.com", "", ""); w == nil || w.EmployeeID != 102 {
		t.Fatalf("Match must prefer identifier, got %+v", w)
	}
	// Name key is the last resort.
	if w := idx.Match(0, "", "", "Ayesha Khan"); w == nil || w.EmployeeID != 101 {
		t.Fatalf("Match by name key failed: %+v", w)
	}
}

func TestCacheRebuildsAfterTTL(t *testing.T) {
	loads := 0
	loader := func(ctx context.Context) ([]Worker, error) {
		loads++
		return testWorkers(), nil
	}

	at := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache(loader, time.Minute, fixedClock(at))

	first := cache.Index(context.Background())
	second := cache.Index(context.Background())
	if loads != 1 {
		t.Fatalf("expected a single load inside the TTL, got %d", loads)
	}
	if first != second {
		t.Fatal("expected the same snapshot inside the TTL")
	}

	at = at.Add(61 * time.Second)
	cache.now = fixedClock(at)
	third := cache.Index(context.Background())
	if loads != 2 {
		t.Fatalf("expected a rebuild past the TTL, got %d loads", loads)
	}
	if third == first {
		t.Fatal("expected a fresh snapshot past the TTL")
	}
}

func TestCacheInvalidate(t *testing.T) {
	loads := 0
	cache := NewCache(func(ctx context.Context) ([]Worker, error) {
		loads++
		return testWorkers(), nil
	}, time.Hour, nil)

	cache.Index(context.Background())
	cache.Invalidate()
	cache.Index(context.Background())
	if loads != 2 {
		t.Fatalf("expected reload after Invalidate, got %d loads", loads)
	}
}

func TestCacheRebuildFailureYieldsEmptyIndex(t *testing.T) {
	cache := NewCache(func(ctx context.Context) ([]Worker, error) {
		return nil, errors.New("store unavailable")
	}, time.Minute, nil)

	idx := cache.Index(context.Background())
	if idx == nil {
		t.Fatal("expected an empty index, not nil")
	}
	if idx.Size() != 0 {
		t.Fatalf("expected empty index, got %d entries", idx.Size())
	}
	if w := idx.Match(101, "a@b.c", "", "anyone"); w != nil {
		t.Fatalf("empty index must miss, got %+v", w)
	}
}

func TestNameKey(t *testing.T) {
	if got := NameKey("  Ayesha   KHAN "); got != "ayesha khan" {
		t.Fatalf("expected %q, got %q", "ayesha khan", got)
	}
	if got := NameKey("   "); got != "" {
		t.Fatalf("expected empty key, got %q", got)
	}
}
