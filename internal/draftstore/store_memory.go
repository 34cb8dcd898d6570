package draftstore

import (
	"context"
	"slices"
	"sync"

	id "rxintake/pkg/domain"
	"rxintake/pkg/platform/sentinel"
)

type memoryKey struct {
	session id.SessionID
	key     Key
}

// InMemory is a process-local Store for tests and development. Values are
// copied on the way in and out.
type InMemory struct {
	mu      sync.RWMutex
	entries map[memoryKey][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[memoryKey][]byte)}
}

func (s *InMemory) Get(_ context.Context, session id.SessionID, key Key) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[memoryKey{session, key}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (s *InMemory) Set(_ context.Context, session id.SessionID, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey{session, key}] = slices.Clone(value)
	return nil
}

func (s *InMemory) Delete(_ context.Context, session id.SessionID, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, memoryKey{session, key})
	return nil
}

func (s *InMemory) Ping(context.Context) error { return nil }
