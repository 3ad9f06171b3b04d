package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikchain/pikchain/store"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs := store.NewFileStore(path, 0)

	_, found := fs.Get("missing")
	assert.False(t, found)

	require.NoError(t, fs.Set("a", "1"))
	require.NoError(t, fs.Set("b", "2"))

	v, found := fs.Get("a")
	assert.True(t, found)
	assert.Equal(t, "1", v)

	assert.ElementsMatch(t, []string{"a", "b"}, fs.Keys())

	require.NoError(t, fs.Remove("a"))
	_, found = fs.Get("a")
	assert.False(t, found)

	// a fresh store over the same file sees the persisted state
	reopened := store.NewFileStore(path, 0)
	v, found = reopened.Get("b")
	assert.True(t, found)
	assert.Equal(t, "2", v)
}

func TestFileStoreSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	fs := store.NewFileStore(path, 0)
	_, found := fs.Get("anything")
	assert.False(t, found)

	// the store is usable after starting over
	require.NoError(t, fs.Set("k", "v"))
	v, found := fs.Get("k")
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestFileStoreQuota(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs := store.NewFileStore(path, 64)

	require.NoError(t, fs.Set("small", "x"))

	big := make([]byte, 256)
	for i := range big {
		big[i] = 'a'
	}
	err := fs.Set("big", string(big))
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)

	// the failed write must not leave a phantom entry behind
	_, found := fs.Get("big")
	assert.False(t, found)
	v, found := fs.Get("small")
	assert.True(t, found)
	assert.Equal(t, "x", v)
}

func TestMemStoreQuota(t *testing.T) {
	ms := store.NewMemStoreWithQuota(16)
	require.NoError(t, ms.Set("k", "v"))
	err := ms.Set("big", "aaaaaaaaaaaaaaaaaaaaaaaa")
	assert.ErrorIs(t, err, store.ErrQuotaExceeded)
	_, found := ms.Get("big")
	assert.False(t, found)
}
