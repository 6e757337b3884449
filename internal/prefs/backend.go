package prefs

import (
	"sync"

	"github.com/vovakirdan/aetheria/internal/storage"
)

// MemoryBackend keeps preferences in memory only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return v, ok, nil
}

func (b *MemoryBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}

// SQLiteBackend stores one user's preferences in a storage.Store.
type SQLiteBackend struct {
	store *storage.Store
	user  string
}

// NewSQLiteBackend scopes store to user.
func NewSQLiteBackend(store *storage.Store, user string) *SQLiteBackend {
	return &SQLiteBackend{store: store, user: user}
}

func (b *SQLiteBackend) Get(key string) (string, bool, error) {
	return b.store.GetPreference(b.user, key)
}

func (b *SQLiteBackend) Set(key, value string) error {
	return b.store.SetPreference(b.user, key, value)
}
