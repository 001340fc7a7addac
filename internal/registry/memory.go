package registry

import (
	"context"
	"sync"
)

type userRecord struct {
	favorites []string
	favSet    map[string]struct{}
	history   []string
}

// MemoryStore is the in-process Store backend. State lives for the
// process lifetime only.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*userRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*userRecord)}
}

func (s *MemoryStore) Register(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		s.users[userID] = &userRecord{
			favorites: []string{},
			favSet:    map[string]struct{}{},
			history:   []string{},
		}
	}
	return nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, userID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil
	}
	if _, dup := rec.favSet[title]; dup {
		return nil
	}
	rec.favSet[title] = struct{}{}
	rec.favorites = append(rec.favorites, title)
	return nil
}

func (s *MemoryStore) Favorites(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(rec.favorites))
	copy(out, rec.favorites)
	return out, nil
}

func (s *MemoryStore) RecordHistory(_ context.Context, userID, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil
	}
	rec.history = append(rec.history, query)
	return nil
}

func (s *MemoryStore) History(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(rec.history))
	copy(out, rec.history)
	return out, nil
}

func (s *MemoryStore) UserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	return ids, nil
}
