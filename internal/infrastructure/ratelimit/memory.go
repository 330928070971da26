package ratelimit

import (
	"context"
	"sync"
	"time"
)

const purgeInterval = 5 * time.Minute

type entry struct {
	count     int64
	windowEnd time.Time
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore contador en memoria del proceso. Las entradas vencidas se purgan cada purgeInterval.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*entry
	lastPurge time.Time
	now       func() time.Time
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry), now: time.Now}
}

// Hit implementa Store.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastPurge) >= purgeInterval {
		s.purge(now)
	}

	e, ok := s.entries[key]
	if !ok || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd, nil
}

// Len número de claves vivas.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) purge(now time.Time) {
	for k, e := range s.entries {
		if now.After(e.windowEnd) {
			delete(s.entries, k)
		}
	}
	s.lastPurge = now
}
