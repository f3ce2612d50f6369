package store

import "sync"

// BlobStore persists opaque values under string keys. Load reports
// whether the key was present.
type BlobStore interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

// MemoryBlobStore is a BlobStore held in process memory.
type MemoryBlobStore struct {
	mu     sync.Mutex
	values map[string][]byte
	saves  int
}

// NewMemoryBlobStore creates an empty MemoryBlobStore.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{values: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Load(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBlobStore) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryBlobStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
