package app_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pikchain/pikchain/app"
	"github.com/pikchain/pikchain/networks"
)

func TestNewWiresSession(t *testing.T) {
	a, err := app.New(app.Options{
		RawChainID:      networks.AmoyChainID,
		ContractAddress: "0x2222222222222222222222222222222222222222",
		StorePath:       t.TempDir() + "/store.json",
	})
	require.NoError(t, err)

	assert.Equal(t, networks.AmoyChainID, a.ChainID)
	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Cache)
	assert.NotNil(t, a.Reader)
	assert.NotNil(t, a.Prober)
	assert.NotNil(t, a.Tracker)
	assert.NotNil(t, a.Resolver)
	assert.NotNil(t, a.Service)
}

func TestNewResolvesUnknownChain(t *testing.T) {
	a, err := app.New(app.Options{
		RawChainID: 99999,
		StorePath:  t.TempDir() + "/store.json",
	})
	require.NoError(t, err)
	assert.Equal(t, networks.DefaultLocalChainID, a.ChainID)
}

func TestNewSupportsConcurrentProbeChains(t *testing.T) {
	a, err := app.New(app.Options{
		RawChainID: networks.DefaultLocalChainID,
		StorePath:  t.TempDir() + "/store.json",
	})
	require.NoError(t, err)

	// probes for every supported chain may run at once; the reader table
	// behind them is built once in New and only read afterwards
	var wg sync.WaitGroup
	for _, n := range networks.GetSupportedNetworks() {
		wg.Add(1)
		go func(chainID int64) {
			defer wg.Done()
			assert.False(t, a.Prober.Loading("0x1", chainID))
		}(n.GetChainID())
	}
	wg.Wait()
}
