package store

import (
	"encoding/json"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"sync"
)

// Mirrors what a browser gives localStorage before it starts refusing writes.
const DEFAULT_QUOTA_BYTES = 4 * 1024 * 1024

func DefaultPath() string {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(usr.HomeDir, ".pikchain", "store.json")
}

type FileStore struct {
	path       string
	quotaBytes int

	mu   sync.Mutex
	data map[string]string
	// loaded guards against re-reading the file on every access
	loaded bool
}

func NewFileStore(path string, quotaBytes int) *FileStore {
	if quotaBytes <= 0 {
		quotaBytes = DEFAULT_QUOTA_BYTES
	}
	return &FileStore{
		path:       path,
		quotaBytes: quotaBytes,
		data:       map[string]string{},
	}
}

func (fs *FileStore) load() {
	if fs.loaded {
		return
	}
	fs.loaded = true
	content, err := os.ReadFile(fs.path)
	if err != nil {
		// WARNING: swallow error here, a missing or unreadable file just
		// means an empty store
		return
	}
	err = json.Unmarshal(content, &fs.data)
	if err != nil {
		// WARNING: swallow error here, corrupted store starts over empty
		fs.data = map[string]string{}
		return
	}
}

func (fs *FileStore) persist() error {
	jsonData, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return err
	}
	if len(jsonData) > fs.quotaBytes {
		return ErrQuotaExceeded
	}
	if err = os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(fs.path, jsonData, 0644)
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.load()
	value, found := fs.data[key]
	return value, found
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.load()
	prev, had := fs.data[key]
	fs.data[key] = value
	if err := fs.persist(); err != nil {
		// roll back so the in-memory view doesn't claim a write that was
		// never durable
		if had {
			fs.data[key] = prev
		} else {
			delete(fs.data, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.load()
	if _, found := fs.data[key]; !found {
		return nil
	}
	delete(fs.data, key)
	return fs.persist()
}

func (fs *FileStore) Keys() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.load()
	keys := make([]string, 0, len(fs.data))
	for k := range fs.data {
		keys = append(keys, k)
	}
	return keys
}
