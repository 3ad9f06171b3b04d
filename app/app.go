// Package app wires the resilience core together for one session: the
// durable store, the read cache, the chain reader, the availability prober,
// the transaction tracker and the gateway resolver, all hanging off one
// explicitly constructed context instead of package-level singletons. Tests
// and callers get a defined initialization point and no hidden shared state.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pikchain/pikchain/cache"
	"github.com/pikchain/pikchain/gateway"
	"github.com/pikchain/pikchain/networks"
	"github.com/pikchain/pikchain/photoblock"
	"github.com/pikchain/pikchain/prober"
	"github.com/pikchain/pikchain/reader"
	"github.com/pikchain/pikchain/store"
	"github.com/pikchain/pikchain/tracker"
)

type Options struct {
	// RawChainID is whatever the environment reported; it is resolved to a
	// supported target chain, never trusted as-is.
	RawChainID      int64
	ContractAddress string
	Gateways        []string
	VerifyContent   bool
	// StorePath locates the durable store file; empty means the default
	// location under the user's home directory.
	StorePath string
	// NodeOverrides replaces the chain's default RPC nodes when non-empty.
	NodeOverrides map[string]string
	Logger        *zap.Logger
}

type App struct {
	ChainID  int64
	Network  networks.Network
	Store    store.Store
	Cache    *cache.Cache
	Reader   *reader.EthReader
	Prober   *prober.Prober
	Tracker  *tracker.Tracker
	Resolver *gateway.Resolver
	Service  *photoblock.Service
	Logger   *zap.Logger
}

func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	chainID := networks.ResolveTarget(opts.RawChainID)
	network, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return nil, err
	}

	storePath := opts.StorePath
	if storePath == "" {
		storePath = store.DefaultPath()
	}
	st := store.NewFileStore(storePath, 0)
	c := cache.New(st, logger)

	// One reader per supported chain, built up front; dialing is lazy so
	// unused chains cost nothing, and the map stays read-only afterwards,
	// safe for concurrent probes.
	readers := map[int64]*reader.EthReader{}
	for _, n := range networks.GetSupportedNetworks() {
		var overrides map[string]string
		if n.GetChainID() == chainID {
			overrides = opts.NodeOverrides
		}
		r, err := reader.NewEthReaderForChain(n.GetChainID(), overrides)
		if err != nil {
			return nil, err
		}
		readers[n.GetChainID()] = r
	}
	rdr := readers[chainID]

	source := func(probeChainID int64) (prober.CodeReader, error) {
		r, found := readers[probeChainID]
		if !found {
			return nil, fmt.Errorf("no reader for chain %d: %w", probeChainID, networks.ErrNetworkNotFound)
		}
		return r, nil
	}
	p := prober.New(source, logger)

	gateways := opts.Gateways
	if len(gateways) == 0 {
		gateways = gateway.DefaultGateways()
	}
	resolver := gateway.NewResolver(gateways, logger)
	resolver.VerifyContent = opts.VerifyContent

	tr := tracker.New(rdr, tracker.NewHistory(st, logger), logger)
	// settled writes change what the chain will answer, so the read cache
	// for that account must not outlive them
	tr.OnSuccess = func(settledChainID int64, account string) {
		c.InvalidateAccount(account, settledChainID)
	}

	svc := photoblock.NewService(rdr, c, p, opts.ContractAddress, chainID, logger)

	return &App{
		ChainID:  chainID,
		Network:  network,
		Store:    st,
		Cache:    c,
		Reader:   rdr,
		Prober:   p,
		Tracker:  tr,
		Resolver: resolver,
		Service:  svc,
		Logger:   logger,
	}, nil
}
