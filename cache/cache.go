// Package cache is a read-through cache for on-chain reads. It never
// short-circuits a fresh fetch: the authoritative source is always tried
// first and the cached copy only backs it up when that fetch fails, so the
// UI can stay populated while an RPC endpoint is down.
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pikchain/pikchain/store"
)

const (
	// keyPrefix versions the cache layout so a format change can't
	// resurrect entries written by an older build.
	keyPrefix = "pikchain_v1"

	DEFAULT_TTL = 5 * time.Minute
)

// Key builds the store key for a logical name scoped to one account on one
// chain. Accounts are lowercased so checksummed and lowercase forms of the
// same address share entries.
func Key(name string, chainID int64, account string) string {
	return fmt.Sprintf("%s_%s_%d_%s", keyPrefix, name, chainID, strings.ToLower(account))
}

func accountSuffix(chainID int64, account string) string {
	return fmt.Sprintf("_%d_%s", chainID, strings.ToLower(account))
}

type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

type Cache struct {
	store  store.Store
	logger *zap.Logger

	// now is swappable so tests can control entry age
	now func() time.Time
}

func New(s store.Store, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// GetRaw returns the cached value for key if present and younger than ttl.
// Expired entries are removed on the way out.
func (c *Cache) GetRaw(key string, ttl time.Duration) (json.RawMessage, bool) {
	raw, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		c.logger.Warn("cache entry unreadable, dropping", zap.String("key", key), zap.Error(err))
		c.remove(key)
		return nil, false
	}
	age := c.now().UnixMilli() - e.Timestamp
	if age > ttl.Milliseconds() {
		c.remove(key)
		return nil, false
	}
	return e.Data, true
}

// getAnyAge is the degraded-mode lookup: TTL expiry is ignored because a
// stale value beats an empty screen when the RPC is down.
func (c *Cache) getAnyAge(key string) (json.RawMessage, bool) {
	raw, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, false
	}
	return e.Data, true
}

// Set stores value under key with the current timestamp. Persistence is
// best-effort: marshal and store failures are logged and swallowed.
func (c *Cache) Set(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache write skipped, value not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	payload, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("cache write skipped", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(key, string(payload)); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Invalidate(key string) {
	c.remove(key)
}

// InvalidateAccount removes every cached key family scoped to the account on
// the given chain. Called after a state-changing transaction settles.
func (c *Cache) InvalidateAccount(account string, chainID int64) {
	suffix := accountSuffix(chainID, account)
	for _, key := range c.store.Keys() {
		if strings.HasPrefix(key, keyPrefix+"_") && strings.HasSuffix(key, suffix) {
			c.remove(key)
		}
	}
}

func (c *Cache) remove(key string) {
	if err := c.store.Remove(key); err != nil {
		c.logger.Warn("cache removal failed", zap.String("key", key), zap.Error(err))
	}
}

// ReadThrough fetches the authoritative value and caches it. When the fetch
// fails and any cached entry exists for key, the cached value is returned
// with stale=true instead of an error so the caller can render a degraded
// indicator. With no cached entry the fetch failure propagates.
func ReadThrough[T any](c *Cache, key string, ttl time.Duration, fresh func() (T, error)) (value T, stale bool, err error) {
	value, err = fresh()
	if err == nil {
		c.Set(key, value)
		return value, false, nil
	}

	data, found := c.getAnyAge(key)
	if !found {
		return value, false, err
	}

	var cached T
	if uerr := json.Unmarshal(data, &cached); uerr != nil {
		c.logger.Warn("stale cache entry undecodable", zap.String("key", key), zap.Error(uerr))
		return value, false, err
	}
	c.logger.Warn("serving stale cache entry, fresh fetch failed", zap.String("key", key), zap.Error(err))
	return cached, true, nil
}

// Get is the typed accessor used before any fresh fetch has run, e.g. to
// seed the UI on startup. Returns found=false when absent or expired.
func Get[T any](c *Cache, key string, ttl time.Duration) (value T, found bool) {
	data, ok := c.GetRaw(key, ttl)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}
