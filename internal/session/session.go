// Package session binds one open syllabus to its checklist progress.
package session

import (
	"github.com/tmarsh/syllabo/internal/state"
	"github.com/tmarsh/syllabo/internal/syllabus"
	"github.com/tmarsh/syllabo/internal/topics"
)

// Item is one checklist row handed to a presenter.
type Item struct {
	topics.Topic
	Done bool
}

// Session holds the current topic list and progress record for a
// single document. Extraction and persistence share no other state.
type Session struct {
	Path     string
	Key      string
	Topics   []topics.Topic
	Progress state.Progress

	store *state.Store
}

// Open extracts topics from the document at path and loads any prior
// progress for it. A read failure aborts the open and touches nothing.
func Open(store *state.Store, path string) (*Session, error) {
	text, err := syllabus.ExtractText(path)
	if err != nil {
		return nil, err
	}

	key := state.Key(path)
	return &Session{
		Path:     path,
		Key:      key,
		Topics:   topics.Extract(text),
		Progress: store.Load(key),
		store:    store,
	}, nil
}

// Items returns the ordered checklist rows with completion flags.
// Completed indices with no current topic are not shown, but stay in
// the record.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.Topics))
	for i, t := range s.Topics {
		out[i] = Item{Topic: t, Done: s.Progress.Done(t.OrderIndex)}
	}
	return out
}

// Toggle flips completion for a topic and saves write-through.
func (s *Session) Toggle(orderIndex int) error {
	s.Progress = s.Progress.Toggle(orderIndex)
	return s.store.Save(s.Progress)
}

// Forget drops loaded progress in memory without clearing the store,
// for fresh-start runs.
func (s *Session) Forget() {
	s.Progress = state.Progress{Key: s.Key, Completed: map[int]bool{}}
}

// Reset clears all completion for this document, in memory and on disk.
func (s *Session) Reset() error {
	s.Forget()
	return s.store.Clear(s.Key)
}

// Summary counts completed topics among the currently displayed ones.
func (s *Session) Summary() (done, total int) {
	for _, t := range s.Topics {
		if s.Progress.Done(t.OrderIndex) {
			done++
		}
	}
	return done, len(s.Topics)
}

// Completion returns the completed fraction in [0, 1].
func (s *Session) Completion() float64 {
	done, total := s.Summary()
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total)
}
