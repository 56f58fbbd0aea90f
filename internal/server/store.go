package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Render is one generated MIDI file kept for download
type Render struct {
	ID        string
	Filename  string
	Style     string
	Key       string
	BPM       int
	Measures  int
	Seed      int64
	Data      []byte
	CreatedAt time.Time
}

// renderTTL bounds how long a render stays downloadable
const renderTTL = time.Hour

// RenderStore keeps generated files in memory, keyed by id
type RenderStore struct {
	mu      sync.RWMutex
	renders map[string]*Render
}

// NewRenderStore creates an empty store
func NewRenderStore() *RenderStore {
	return &RenderStore{renders: make(map[string]*Render)}
}

// Put stores a render under a fresh id and returns it
func (s *RenderStore) Put(r *Render) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	s.renders[r.ID] = r
	return r.ID
}

// Get returns a render by id
func (s *RenderStore) Get(id string) (*Render, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.renders[id]
	return r, ok
}

// evictLocked drops expired renders; caller holds the write lock
func (s *RenderStore) evictLocked() {
	cutoff := time.Now().Add(-renderTTL)
	for id, r := range s.renders {
		if r.CreatedAt.Before(cutoff) {
			delete(s.renders, id)
		}
	}
}
