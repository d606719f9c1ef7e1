package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process CacheStore. Entries are lost on restart.
type MemoryStore struct {
	store *gocache.Cache

	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a store that sweeps expired entries every
// cleanupInterval until Close is called. A non-positive interval disables
// the sweep; expired entries are still never returned.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		store: gocache.New(gocache.NoExpiration, 0),
		done:  make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.sweep(cleanupInterval)
	}
	return m
}

func (m *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.store.DeleteExpired()
		case <-m.done:
			return
		}
	}
}

// Close stops the sweep goroutine. It is safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	// Copy so callers cannot mutate the cached bytes.
	m.store.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}

// Flush removes all entries.
func (m *MemoryStore) Flush() {
	m.store.Flush()
}

// Len reports the number of stored entries, including expired ones not yet swept.
func (m *MemoryStore) Len() int {
	return m.store.ItemCount()
}
