package grid_test

import (
	"testing"

	"github.com/go-theft-auto/grid"
)

func TestFrameStoreGetOrLoad(t *testing.T) {
	store := grid.NewFrameStore[string]()
	load := func() (string, bool) { return "row", true }

	store.GetOrLoad(1, load)
	store.GetOrLoad(1, load)
	if store.Loads() != 1 {
		t.Errorf("Expected 1 load, got %d", store.Loads())
	}

	// Failed loads are not cached.
	store.GetOrLoad(2, func() (string, bool) { return "", false })
	store.GetOrLoad(2, func() (string, bool) { return "", false })
	if store.Loads() != 3 || store.Len() != 1 {
		t.Errorf("Expected 3 loads and 1 entry, got %d loads %d entries", store.Loads(), store.Len())
	}
}

func TestFrameStoreDropsStaleEntries(t *testing.T) {
	store := grid.NewFrameStore[int]()
	for i := 0; i < 10; i++ {
		store.GetOrLoad(i, func() (int, bool) { return i, true })
	}

	store.NextFrame()
	for i := 5; i < 10; i++ {
		store.GetOrLoad(i, func() (int, bool) { return i, true })
	}
	// Entries untouched for a full cycle go away on the next one.
	store.NextFrame()

	if store.Len() != 5 {
		t.Errorf("Expected 5 entries, got %d", store.Len())
	}
	if _, ok := store.Get(2); ok {
		t.Error("Expected row 2 dropped")
	}
	if v, ok := store.Get(7); !ok || v != 7 {
		t.Errorf("Expected row 7 kept, got %v (%v)", v, ok)
	}
}

func TestFrameStoreClear(t *testing.T) {
	store := grid.NewFrameStore[int]()
	store.GetOrLoad(1, func() (int, bool) { return 1, true })
	store.Delete(1)
	store.GetOrLoad(2, func() (int, bool) { return 2, true })
	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Expected empty store, got %d", store.Len())
	}
}
