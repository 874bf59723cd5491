package memory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"crediario/internal/storage"
)

// Store keeps slots in process memory. Nothing survives a restart.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

// NewFromDir seeds the store from <key>.json files in base. A missing or
// unreadable directory yields an empty store.
func NewFromDir(base string) *Store {
	s := New()
	entries, err := os.ReadDir(base)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(base, e.Name()))
		if err != nil {
			continue
		}
		s.slots[strings.TrimSuffix(e.Name(), ".json")] = b
	}
	return s
}

func (s *Store) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
