package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestKey(t *testing.T) {
	k1 := Key("syllabus.pdf")
	k2 := Key("./syllabus.pdf")
	if k1 != k2 {
		t.Errorf("equivalent paths produced different keys: %q vs %q", k1, k2)
	}
	if !filepath.IsAbs(k1) {
		t.Errorf("key %q is not absolute", k1)
	}
}

func TestToggle(t *testing.T) {
	p := Progress{Key: "k", Completed: map[int]bool{}}

	p1 := p.Toggle(2)
	if !p1.Done(2) {
		t.Error("index 2 should be completed after toggle")
	}
	if p.Done(2) {
		t.Error("Toggle mutated the original record")
	}

	// Toggling twice returns an equivalent record.
	p2 := p1.Toggle(2)
	if p2.Done(2) {
		t.Error("index 2 should be cleared after second toggle")
	}
	if p2.Count() != 0 {
		t.Errorf("expected empty record, got %d entries", p2.Count())
	}
}

func TestStoreRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	key := Key(filepath.Join(tmpDir, "syllabus.pdf"))

	// Load of an unknown key returns an empty record, never an error.
	p := store.Load(key)
	if p.Count() != 0 {
		t.Errorf("expected empty record for unknown key, got %d", p.Count())
	}

	p = p.Toggle(2)
	if err := store.Save(p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load(key)
	if !got.Done(2) || got.Count() != 1 {
		t.Errorf("round trip lost data: %v", got.Completed)
	}
}

func TestStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	key := "/home/user/syllabus.pdf"

	store1, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	p := store1.Load(key).Toggle(0).Toggle(3).Toggle(7)
	if err := store1.Save(p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A fresh store instance reads the same record back.
	store2, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	got := store2.Load(key)
	for _, i := range []int{0, 3, 7} {
		if !got.Done(i) {
			t.Errorf("index %d lost across store instances", i)
		}
	}
	if got.Count() != 3 {
		t.Errorf("expected 3 entries, got %d", got.Count())
	}
}

func TestStoreStaleIndicesRetained(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	// Index 9 references a topic a re-extraction no longer yields.
	// Saving must keep it: the document may grow back.
	p := store.Load("k").Toggle(0).Toggle(9)
	if err := store.Save(p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p = store.Load("k").Toggle(1)
	if err := store.Save(p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load("k")
	if !got.Done(9) {
		t.Error("stale index 9 was pruned")
	}
}

func TestStoreClear(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Save(store.Load("k").Toggle(1)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear("k"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Load("k").Count() != 0 {
		t.Error("expected empty record after Clear")
	}
}

func TestStoreCorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "syllabo")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0644)

	store, err := NewStore()
	if err == nil {
		t.Fatal("expected CorruptStateError")
	}
	var corrupt *CorruptStateError
	if !errors.As(err, &corrupt) {
		t.Fatalf("error %v is not a *CorruptStateError", err)
	}

	// The store degrades to empty but keeps working.
	if store == nil {
		t.Fatal("store should be usable despite corruption")
	}
	if store.Load("k").Count() != 0 {
		t.Error("expected empty record from corrupt store")
	}
	if err := store.Save(store.Load("k").Toggle(4)); err != nil {
		t.Fatalf("Save after corruption failed: %v", err)
	}
	if !store.Load("k").Done(4) {
		t.Error("save after corruption lost data")
	}
}
