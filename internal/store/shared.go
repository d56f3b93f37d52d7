package store

import "sync"

// Shared wraps a DB behind a single-writer discipline: mutations run one
// at a time under Update, and readers under Read never observe a
// half-applied mutation. Long-lived consumers (the TUI, the agenda view)
// hold a *Shared; one-shot CLI commands load, mutate and save directly.
type Shared struct {
	mu sync.RWMutex
	db *DB
}

func NewShared(db *DB) *Shared {
	if db == nil {
		db = &DB{Version: 1}
	}
	return &Shared{db: db}
}

// Update runs fn with exclusive access. The mutation either fully
// applies or fails; fn's error is returned unchanged.
func (s *Shared) Update(fn func(*DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}

// Read runs fn with shared access. fn must not mutate the DB.
func (s *Shared) Read(fn func(*DB)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.db)
}

// Snapshot returns a deep copy for exporters and other out-of-tree consumers.
func (s *Shared) Snapshot() (*DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.Clone()
}
