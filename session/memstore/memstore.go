package memstore

import (
	"context"
	"sync"

	"github.com/jrsteele09/tcms-client/session"
)

var (
	_ session.Store      = (*Store)(nil)
	_ session.BatchStore = (*Store)(nil)
)

// Store keeps session fields in process memory.
type Store struct {
	mu     sync.RWMutex
	values map[session.Key]string
}

func New() *Store {
	return &Store{
		values: make(map[session.Key]string),
	}
}

func (s *Store) Get(_ context.Context, key session.Key) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, key session.Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *Store) SetMany(_ context.Context, values map[session.Key]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.values[key] = value
	}
	return nil
}

// GetMany returns the stored values of keys. Absent keys are left out.
func (s *Store) GetMany(_ context.Context, keys ...session.Key) (map[session.Key]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[session.Key]string, len(keys))
	for _, key := range keys {
		if value, ok := s.values[key]; ok {
			out[key] = value
		}
	}
	return out, nil
}

func (s *Store) Remove(_ context.Context, keys ...session.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
