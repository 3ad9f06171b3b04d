package store

import (
	"sync"
)

// MemStore is an in-process Store used by tests and by sessions that opt out
// of persistence. A quota of 0 means unbounded.
type MemStore struct {
	mu         sync.Mutex
	data       map[string]string
	quotaBytes int
}

func NewMemStore() *MemStore {
	return &MemStore{data: map[string]string{}}
}

func NewMemStoreWithQuota(quotaBytes int) *MemStore {
	return &MemStore{data: map[string]string{}, quotaBytes: quotaBytes}
}

func (ms *MemStore) size() int {
	total := 0
	for k, v := range ms.data {
		total += len(k) + len(v)
	}
	return total
}

func (ms *MemStore) Get(key string) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	value, found := ms.data[key]
	return value, found
}

func (ms *MemStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	prev, had := ms.data[key]
	ms.data[key] = value
	if ms.quotaBytes > 0 && ms.size() > ms.quotaBytes {
		if had {
			ms.data[key] = prev
		} else {
			delete(ms.data, key)
		}
		return ErrQuotaExceeded
	}
	return nil
}

func (ms *MemStore) Remove(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.data, key)
	return nil
}

func (ms *MemStore) Keys() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	keys := make([]string, 0, len(ms.data))
	for k := range ms.data {
		keys = append(keys, k)
	}
	return keys
}
