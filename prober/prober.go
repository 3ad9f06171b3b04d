// Package prober answers "is the contract actually deployed there yet" for
// an (address, chain) pair before the UI lets a write go out. A ready
// answer is remembered for the session; anything else is re-asked, so a
// transient RPC failure can never wedge a contract into permanent
// not-ready.
package prober

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CodeReader is the single chain operation the prober needs.
type CodeReader interface {
	GetCode(address string) ([]byte, error)
}

// ReaderSource hands out a CodeReader for a chain id.
type ReaderSource func(chainID int64) (CodeReader, error)

type probeKey struct {
	address string
	chainID int64
}

type Prober struct {
	source ReaderSource
	logger *zap.Logger

	mu sync.Mutex
	// ready only ever holds true values: a successful probe of a deployed
	// contract. Not-deployed and failed lookups are recomputed every time.
	ready   map[probeKey]bool
	loading map[probeKey]int

	group singleflight.Group
}

func New(source ReaderSource, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		source:  source,
		logger:  logger,
		ready:   map[probeKey]bool{},
		loading: map[probeKey]int{},
	}
}

func keyOf(address string, chainID int64) probeKey {
	return probeKey{address: strings.ToLower(strings.TrimSpace(address)), chainID: chainID}
}

// IsReady reports whether non-empty bytecode sits at address on the given
// chain. Lookup failures fail closed: the contract is reported not ready and
// the error is returned so the caller can distinguish "not deployed yet"
// from "couldn't check". Concurrent probes of the same pair share one
// network call.
func (p *Prober) IsReady(address string, chainID int64) (bool, error) {
	key := keyOf(address, chainID)

	p.mu.Lock()
	if p.ready[key] {
		p.mu.Unlock()
		return true, nil
	}
	p.mu.Unlock()

	flightKey := fmt.Sprintf("%s@%d", key.address, key.chainID)
	v, err, _ := p.group.Do(flightKey, func() (interface{}, error) {
		p.setLoading(key, true)
		defer p.setLoading(key, false)

		r, err := p.source(chainID)
		if err != nil {
			return false, err
		}
		code, err := r.GetCode(key.address)
		if err != nil {
			return false, err
		}
		return len(code) > 0, nil
	})
	if err != nil {
		p.logger.Warn("contract availability check failed",
			zap.String("address", key.address),
			zap.Int64("chain_id", chainID),
			zap.Error(err))
		return false, err
	}

	ready := v.(bool)
	if ready {
		p.mu.Lock()
		p.ready[key] = true
		p.mu.Unlock()
	} else {
		p.logger.Warn("contract code missing",
			zap.String("address", key.address),
			zap.Int64("chain_id", chainID))
	}
	return ready, nil
}

// Loading reports whether a probe for the pair is currently in flight, used
// by callers to gate their UI.
func (p *Prober) Loading(address string, chainID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading[keyOf(address, chainID)] > 0
}

func (p *Prober) setLoading(key probeKey, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if on {
		p.loading[key]++
	} else if p.loading[key] > 0 {
		p.loading[key]--
	}
}
