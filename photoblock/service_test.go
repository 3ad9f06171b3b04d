package photoblock_test

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikchain/pikchain/cache"
	"github.com/pikchain/pikchain/photoblock"
	"github.com/pikchain/pikchain/prober"
	"github.com/pikchain/pikchain/store"
)

const (
	account      = "0xAbCd000000000000000000000000000000000001"
	contractAddr = "0x2222222222222222222222222222222222222222"
	chainID      = int64(80002)
)

type fakeContractReader struct {
	cids []string
	name string
	err  error
	code []byte
}

func (f *fakeContractReader) ReadContractWithABIAndFrom(result interface{}, from, caddr string, a *abi.ABI, method string, args ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	switch method {
	case "getCIDs":
		*(result.(*[]string)) = f.cids
	case "getUsername":
		*(result.(*string)) = f.name
	}
	return nil
}

func (f *fakeContractReader) GetCode(address string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.code, nil
}

func newService(f *fakeContractReader) *photoblock.Service {
	c := cache.New(store.NewMemStore(), nil)
	p := prober.New(func(int64) (prober.CodeReader, error) { return f, nil }, nil)
	return photoblock.NewService(f, c, p, contractAddr, chainID, nil)
}

func TestServiceCIDsFresh(t *testing.T) {
	f := &fakeContractReader{cids: []string{"QmA", "QmA", "QmB"}}
	s := newService(f)

	unique, counts, stale, err := s.CIDs(account)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, []string{"QmA", "QmB"}, unique)
	assert.Equal(t, 2, counts["QmA"])
}

func TestServiceCIDsStaleFallback(t *testing.T) {
	f := &fakeContractReader{cids: []string{"QmA"}}
	s := newService(f)

	_, _, _, err := s.CIDs(account)
	require.NoError(t, err)

	f.err = fmt.Errorf("rpc down")
	unique, _, stale, err := s.CIDs(account)
	require.NoError(t, err)
	assert.True(t, stale, "rpc failure with cached data must flag staleness")
	assert.Equal(t, []string{"QmA"}, unique)
}

func TestServiceCIDsServedWhileProbeUnreachable(t *testing.T) {
	f := &fakeContractReader{cids: []string{"QmA"}}
	s := newService(f)

	_, _, _, err := s.CIDs(account)
	require.NoError(t, err)

	// chain goes fully dark: the probe fails, but the read path must still
	// hand out the cached gallery instead of going blank
	f.err = fmt.Errorf("rpc down")
	require.Error(t, s.EnsureReady())

	unique, _, stale, err := s.CIDs(account)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, []string{"QmA"}, unique)
}

func TestServiceCIDsNoCachePropagates(t *testing.T) {
	f := &fakeContractReader{err: fmt.Errorf("rpc down")}
	s := newService(f)

	_, _, _, err := s.CIDs(account)
	assert.Error(t, err)
}

func TestServiceUsername(t *testing.T) {
	f := &fakeContractReader{name: "alice"}
	s := newService(f)

	name, stale, err := s.Username(account)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, "alice", name)
}

func TestServiceEnsureReady(t *testing.T) {
	f := &fakeContractReader{code: []byte{0x60}}
	s := newService(f)
	assert.NoError(t, s.EnsureReady())

	empty := &fakeContractReader{code: []byte{}}
	s = newService(empty)
	assert.ErrorIs(t, s.EnsureReady(), photoblock.ErrContractNotReady)

	// an unreachable chain blocks too, but not with the not-deployed sentinel
	failing := &fakeContractReader{err: fmt.Errorf("rpc down")}
	s = newService(failing)
	err := s.EnsureReady()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, photoblock.ErrContractNotReady)
}

func TestServiceCachedCIDsBeforeFirstFetch(t *testing.T) {
	f := &fakeContractReader{cids: []string{"QmA"}}
	s := newService(f)

	_, found := s.CachedCIDs(account)
	assert.False(t, found, "nothing cached before the first read-through")

	_, _, _, err := s.CIDs(account)
	require.NoError(t, err)

	cids, found := s.CachedCIDs(account)
	assert.True(t, found)
	assert.Equal(t, []string{"QmA"}, cids)
}
