package photoblock

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/pikchain/pikchain/cache"
	"github.com/pikchain/pikchain/prober"
)

// ErrContractNotReady distinguishes "the contract isn't deployed yet" from a
// generic RPC failure, so callers can tell the user to wait for deployment
// rather than to retry.
var ErrContractNotReady = fmt.Errorf("gallery contract not deployed on this chain yet")

// ContractReader is the read slice of the chain RPC the service consumes.
type ContractReader interface {
	ReadContractWithABIAndFrom(result interface{}, from string, caddr string, a *abi.ABI, method string, args ...interface{}) error
}

// Service answers gallery reads for one (contract, chain) pair. Fresh chain
// data is always preferred; cached data backs it up when the RPC fails, and
// the stale flag on each answer tells the UI which one it got.
type Service struct {
	reader       ContractReader
	cache        *cache.Cache
	prober       *prober.Prober
	contractAddr string
	chainID      int64
	logger       *zap.Logger

	// TTL applies to plain cache reads; read-throughs always hit the chain.
	TTL time.Duration
}

func NewService(r ContractReader, c *cache.Cache, p *prober.Prober, contractAddr string, chainID int64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		reader:       r,
		cache:        c,
		prober:       p,
		contractAddr: contractAddr,
		chainID:      chainID,
		logger:       logger,
		TTL:          cache.DEFAULT_TTL,
	}
}

// EnsureReady gates writes: it fails with ErrContractNotReady when no code
// sits at the contract address. A probe that couldn't run at all propagates
// as its own error so callers can tell "not deployed" from "unreachable";
// either way nothing proceeds.
func (s *Service) EnsureReady() error {
	ready, err := s.prober.IsReady(s.contractAddr, s.chainID)
	if err != nil {
		return fmt.Errorf("couldn't probe gallery contract: %w", err)
	}
	if !ready {
		return ErrContractNotReady
	}
	return nil
}

// CIDs returns the account's content identifiers, deduplicated, with the
// per-identifier duplicate counts. stale=true means the RPC failed and a
// cached copy is being served.
func (s *Service) CIDs(account string) (unique []string, counts map[string]int, stale bool, err error) {
	key := cache.Key("cids", s.chainID, account)
	raw, stale, err := cache.ReadThrough(s.cache, key, s.TTL, func() ([]string, error) {
		var cids []string
		err := s.reader.ReadContractWithABIAndFrom(&cids, account, s.contractAddr, GetContractABI(), "getCIDs")
		if err != nil {
			return nil, err
		}
		return cids, nil
	})
	if err != nil {
		return nil, nil, false, err
	}
	unique, counts = NormalizeCIDs(raw)
	return unique, counts, stale, nil
}

// Username resolves the display name the account registered on-chain.
func (s *Service) Username(account string) (string, bool, error) {
	key := cache.Key("username", s.chainID, account)
	return cache.ReadThrough(s.cache, key, s.TTL, func() (string, error) {
		var name string
		err := s.reader.ReadContractWithABIAndFrom(&name, account, s.contractAddr, GetContractABI(), "getUsername", common.HexToAddress(account))
		return name, err
	})
}

// CachedCIDs is the pre-fetch accessor used to seed the UI before the first
// chain read completes. Returns found=false when nothing usable is cached.
func (s *Service) CachedCIDs(account string) ([]string, bool) {
	raw, found := cache.Get[[]string](s.cache, cache.Key("cids", s.chainID, account), s.TTL)
	if !found {
		return nil, false
	}
	unique, _ := NormalizeCIDs(raw)
	return unique, true
}
