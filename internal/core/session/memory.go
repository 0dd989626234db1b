package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore backs sessions when no Redis is configured (single-process
// deployments, tests). Expired entries are reaped lazily on Get.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memEntry
}

type memEntry struct {
	data    Data
	expires time.Time
}

func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]memEntry)}
}

func (s *MemoryStore) Set(_ context.Context, id string, d Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = memEntry{data: d, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expires) {
		delete(s.m, id)
		return nil, nil
	}
	e.expires = time.Now().Add(s.ttl)
	s.m[id] = e
	d := e.data
	return &d, nil
}

func (s *MemoryStore) Invalidate(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
