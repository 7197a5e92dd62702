// Package state persists per-syllabus checklist progress.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const stateFileName = "progress.json"

// CorruptStateError reports a progress file that exists but cannot be
// parsed. Callers treat it as an empty store and keep going.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt progress file %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// Progress is the completion record for one syllabus.
type Progress struct {
	Key       string
	Completed map[int]bool
}

// Done reports whether the topic at orderIndex is checked off.
func (p Progress) Done(orderIndex int) bool {
	return p.Completed[orderIndex]
}

// Count returns the number of completed indices.
func (p Progress) Count() int {
	return len(p.Completed)
}

// Toggle returns a copy with orderIndex flipped: added if absent,
// removed if present. The receiver is unchanged.
func (p Progress) Toggle(orderIndex int) Progress {
	next := Progress{Key: p.Key, Completed: make(map[int]bool, len(p.Completed)+1)}
	for i := range p.Completed {
		next.Completed[i] = true
	}
	if next.Completed[orderIndex] {
		delete(next.Completed, orderIndex)
	} else {
		next.Completed[orderIndex] = true
	}
	return next
}

// record is the on-disk shape for one syllabus entry.
type record struct {
	Completed []int `json:"completed"`
}

// Store manages the persistent progress file.
type Store struct {
	path string
	data map[string]record
	mu   sync.RWMutex
}

// NewStore creates or loads progress from XDG_STATE_HOME/syllabo/.
// When the file exists but cannot be parsed, the returned error is a
// *CorruptStateError and the store is still usable, starting empty.
func NewStore() (*Store, error) {
	dir := getStateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]record),
	}
	if err := store.load(); err != nil {
		store.data = make(map[string]record)
		return store, &CorruptStateError{Path: store.path, Err: err}
	}
	return store, nil
}

// getStateDir returns XDG_STATE_HOME/syllabo or ~/.local/state/syllabo
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "syllabo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "syllabo")
}

// Key derives the syllabus key from a file path.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Load returns the progress record for a key, empty if none exists.
func (s *Store) Load(key string) Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := Progress{Key: key, Completed: make(map[int]bool)}
	if rec, ok := s.data[key]; ok {
		for _, i := range rec.Completed {
			p.Completed[i] = true
		}
	}
	return p
}

// Save persists the record write-through, fully replacing any prior
// record for the same key. Indices with no current topic are kept:
// a later re-extraction may yield the same topic at the same index.
func (s *Store) Save(p Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	indices := make([]int, 0, len(p.Completed))
	for i := range p.Completed {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	s.data[p.Key] = record{Completed: indices}
	return s.save()
}

// Clear removes the record for a key.
func (s *Store) Clear(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

// save writes to a temp file and renames it over the old one, so a
// crash mid-write never leaves a half-written progress file behind.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
