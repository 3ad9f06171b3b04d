// Package store provides the durable local key-value persistence shared by
// the read cache and the transaction tracker. The contract is deliberately
// small and synchronous: one string value per key, writes may fail on quota
// exhaustion and callers decide whether that matters.
package store

import (
	"fmt"
)

var ErrQuotaExceeded = fmt.Errorf("store quota exceeded")

type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set overwrites the value for key. Returns ErrQuotaExceeded when the
	// write would push the store past its size bound.
	Set(key, value string) error
	Remove(key string) error
	Keys() []string
}
