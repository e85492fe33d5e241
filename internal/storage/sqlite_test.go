package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "layouts.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesNestedDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "layouts.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()
}

func TestSaveAndRetrieveLayout(t *testing.T) {
	store := openTestStore(t)

	entry := LayoutEntry{
		Name:          "demo-track",
		Strategy:      "random",
		Seed:          18446744073709551615, // max uint64 must round-trip
		FrameCount:    6,
		PlatformCount: 6,
		WallCount:     14,
		Data:          []byte("name: demo-track\n"),
	}

	id, err := store.SaveLayout(entry)
	if err != nil {
		t.Fatalf("SaveLayout() error: %v", err)
	}
	if id <= 0 {
		t.Fatalf("SaveLayout() returned id %d", id)
	}

	got, err := store.LayoutByID(id)
	if err != nil {
		t.Fatalf("LayoutByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("LayoutByID() returned nil for saved layout")
	}

	if got.Name != entry.Name {
		t.Errorf("Name = %q, expected %q", got.Name, entry.Name)
	}
	if got.Strategy != entry.Strategy {
		t.Errorf("Strategy = %q, expected %q", got.Strategy, entry.Strategy)
	}
	if got.Seed != entry.Seed {
		t.Errorf("Seed = %d, expected %d", got.Seed, entry.Seed)
	}
	if got.FrameCount != entry.FrameCount || got.PlatformCount != entry.PlatformCount || got.WallCount != entry.WallCount {
		t.Errorf("counts = (%d, %d, %d), expected (%d, %d, %d)",
			got.FrameCount, got.PlatformCount, got.WallCount,
			entry.FrameCount, entry.PlatformCount, entry.WallCount)
	}
	if string(got.Data) != string(entry.Data) {
		t.Errorf("Data = %q, expected %q", got.Data, entry.Data)
	}
}

func TestLayoutByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.LayoutByID(999)
	if err != nil {
		t.Fatalf("LayoutByID() error: %v", err)
	}
	if got != nil {
		t.Errorf("LayoutByID() = %+v, expected nil for missing id", got)
	}
}

func TestRecentLayoutsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := store.SaveLayout(LayoutEntry{
			Name:     "track",
			Strategy: "random",
			Data:     []byte("x"),
		})
		if err != nil {
			t.Fatalf("SaveLayout() error: %v", err)
		}
	}

	entries, err := store.RecentLayouts(3)
	if err != nil {
		t.Fatalf("RecentLayouts() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("RecentLayouts(3) returned %d entries", len(entries))
	}
	// Newest first; inserts within one second tie on created_at and fall
	// back to id order.
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID < entries[i].ID {
			t.Errorf("entries out of order: id %d before %d", entries[i-1].ID, entries[i].ID)
		}
	}
}

func TestRecentLayoutsDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLayout(LayoutEntry{Name: "only", Strategy: "random", Data: []byte("x")}); err != nil {
		t.Fatalf("SaveLayout() error: %v", err)
	}

	entries, err := store.RecentLayouts(0)
	if err != nil {
		t.Fatalf("RecentLayouts() error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("RecentLayouts(0) returned %d entries, expected 1", len(entries))
	}
}

func TestDeleteLayout(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveLayout(LayoutEntry{Name: "doomed", Strategy: "random", Data: []byte("x")})
	if err != nil {
		t.Fatalf("SaveLayout() error: %v", err)
	}

	if err := store.DeleteLayout(id); err != nil {
		t.Fatalf("DeleteLayout() error: %v", err)
	}

	got, err := store.LayoutByID(id)
	if err != nil {
		t.Fatalf("LayoutByID() error: %v", err)
	}
	if got != nil {
		t.Error("layout still present after delete")
	}

	// Deleting an absent id is not an error.
	if err := store.DeleteLayout(id); err != nil {
		t.Errorf("DeleteLayout() on missing id = %v", err)
	}
}
