// pkg/kvstore/kvstore.go
package kvstore

import (
	"strings"
	"sync"
)

// Store is the durable key-value surface the quiz engine and tracking layer
// persist into. It mirrors the browser localStorage the original funnel used:
// string keys, string values, no expiry, last writer wins.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)

	// Keys returns every stored key with the given prefix. Pass "" for all.
	Keys(prefix string) []string
}

type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string]string),
	}
}

func (s *InMemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok
}

func (s *InMemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

func (s *InMemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
}

func (s *InMemoryStore) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}
