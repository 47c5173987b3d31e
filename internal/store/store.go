// Package store owns the process-wide workflow state: the session map and
// the append-only memory log. All access goes through one mutex so
// concurrent tool calls have defined semantics. Nothing is persisted; a
// restart loses everything.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Importance labels accepted for memory items.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Session is a named continuity context. Purely nominal: it is created,
// counted, and never read back.
type Session struct {
	Name      string    `json:"name"`
	Purpose   string    `json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// Memory is an append-only note with an importance label.
type Memory struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Importance string    `json:"importance"`
	SavedAt    time.Time `json:"saved_at"`
}

// Store holds both collections for the life of the process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	memory   []Memory
}

// New constructs an empty Store.
func New() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// CreateSession inserts a new active session and returns its token and the
// stored record.
func (s *Store) CreateSession(name, purpose string) (string, Session) {
	id := newToken()
	sess := Session{
		Name:      name,
		Purpose:   purpose,
		CreatedAt: time.Now(),
		Status:    "active",
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess
}

// AppendMemory appends a memory item and returns its token and the new
// total count.
func (s *Store) AppendMemory(content, importance string) (string, int) {
	id := newToken()
	item := Memory{
		ID:         id,
		Content:    content,
		Importance: importance,
		SavedAt:    time.Now(),
	}
	s.mu.Lock()
	s.memory = append(s.memory, item)
	n := len(s.memory)
	s.mu.Unlock()
	return id, n
}

// Counts reports the live sizes of both collections.
func (s *Store) Counts() (sessions, memories int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions), len(s.memory)
}

// HasSession reports whether a session token exists.
func (s *Store) HasSession(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// newToken returns an 8-hex-char random identifier. Collisions within a
// process lifetime are treated as negligible.
func newToken() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
